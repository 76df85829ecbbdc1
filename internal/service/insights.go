package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devpulse/internal/ai"

	"go.uber.org/zap"
)

type InsightsService interface {
	Summary(ctx context.Context, userID string, days int) (*Insight, error)
}

type insightsService struct {
	analytics AnalyticsService
	mode      ModeService
	breaker   *ai.Breaker
	log       *zap.Logger
}

func NewInsightsService(analytics AnalyticsService, mode ModeService, breaker *ai.Breaker, log *zap.Logger) InsightsService {
	return &insightsService{
		analytics: analytics,
		mode:      mode,
		breaker:   breaker,
		log:       log,
	}
}

type Insight struct {
	UserID      string
	WindowDays  int
	Summary     string
	GeneratedAt time.Time
}

const insightAttempts = 2

func (s *insightsService) Summary(ctx context.Context, userID string, days int) (*Insight, error) {
	days = clampWindow(days)

	prod, err := s.analytics.Productivity(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	burnout, err := s.analytics.Burnout(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	client, err := s.mode.AIClient(ctx)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(prod, burnout)

	var summary string
	for attempt := 0; attempt < insightAttempts; attempt++ {
		err = s.breaker.Do(func() error {
			var callErr error
			summary, callErr = client.Summarize(ctx, prompt)
			return callErr
		})
		if err == nil {
			break
		}
		if errors.Is(err, ai.ErrBreakerOpen) {
			return nil, NewErr(ErrorCodeAIUnavailable, "insight service temporarily unavailable")
		}
		s.log.Warn("insight generation attempt failed",
			zap.Int("attempt", attempt+1), zap.Error(err))
	}
	if err != nil {
		return nil, NewErr(ErrorCodeAIUnavailable, "insight service temporarily unavailable")
	}

	return &Insight{
		UserID:      userID,
		WindowDays:  days,
		Summary:     summary,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func buildPrompt(p *ProductivityReport, b *BurnoutReport) string {
	return fmt.Sprintf(
		"Developer %s over the last %d days: %d commits (%.1f/day), %d pull requests "+
			"(%d merged), %d issues closed. Late-night commit fraction %.2f, weekend "+
			"fraction %.2f, average review latency %.1fh, burnout risk %.2f (%s).",
		p.Login, len(p.Days), p.TotalCommits, p.AvgDailyCommits, p.TotalPRs,
		p.MergedPRs, p.ClosedIssues, b.LateNightFraction, b.WeekendFraction,
		b.ReviewLatencyH, b.RiskScore, b.RiskLevel,
	)
}
