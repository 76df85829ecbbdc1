package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

const systemPrompt = "You are an engineering-analytics assistant. Given commit, " +
	"pull-request and burnout metrics for a developer or team, write a short, " +
	"plain-language summary (3-5 sentences) highlighting notable work patterns " +
	"and one concrete suggestion. Do not invent numbers."

// Client produces a narrative summary for a metrics prompt.
type Client interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type OpenAIClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration, log *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		c.log.Error("completion request failed", zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// MockClient returns canned summaries in mock mode.
type MockClient struct{}

func (MockClient) Summarize(ctx context.Context, prompt string) (string, error) {
	return "Activity over the selected window looks steady, with most work landing " +
		"during regular hours. Review turnaround is within a healthy range. " +
		"Consider batching late-evening pushes into the next morning to keep " +
		"the late-night fraction low.", nil
}
