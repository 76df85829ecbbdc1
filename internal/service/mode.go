package service

import (
	"context"
	"errors"

	"devpulse/internal/ai"
	"devpulse/internal/github"
	"devpulse/internal/models"
	"devpulse/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ModeService owns the live/mock switch and hands out the matching upstream
// clients.
type ModeService interface {
	Get(ctx context.Context) (models.Mode, error)
	Set(ctx context.Context, mode models.Mode, updatedBy string) (models.Mode, error)
	EnsureDefaults(ctx context.Context) error
	GitHubClient(ctx context.Context) (github.Client, error)
	AIClient(ctx context.Context) (ai.Client, error)
}

type modeService struct {
	repo       *repository.Repository
	liveGitHub github.Client
	liveAI     ai.Client
	mockAI     ai.Client
	log        *zap.Logger
}

func NewModeService(repo *repository.Repository, liveGitHub github.Client, liveAI, mockAI ai.Client, log *zap.Logger) ModeService {
	return &modeService{
		repo:       repo,
		liveGitHub: liveGitHub,
		liveAI:     liveAI,
		mockAI:     mockAI,
		log:        log,
	}
}

func (s *modeService) Get(ctx context.Context) (models.Mode, error) {
	m, err := s.repo.Mode.Get(ctx)
	if err != nil {
		return "", err
	}
	return m.Mode, nil
}

func (s *modeService) Set(ctx context.Context, mode models.Mode, updatedBy string) (models.Mode, error) {
	if mode != models.ModeLive && mode != models.ModeMock {
		return "", NewErr(ErrorCodeBadRequest, "mode must be LIVE or MOCK")
	}
	m, err := s.repo.Mode.Set(ctx, mode, updatedBy)
	if err != nil {
		return "", err
	}
	s.log.Info("app mode changed", zap.String("mode", string(m.Mode)), zap.String("by", updatedBy))
	return m.Mode, nil
}

// EnsureDefaults makes sure a mock data set exists so MOCK mode works out of
// the box.
func (s *modeService) EnsureDefaults(ctx context.Context) error {
	_, err := s.repo.Mode.GetActiveDataSet(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.repo.Mode.UpsertDataSet(ctx, &models.MockDataSet{
		Name:      "default",
		Seed:      42,
		RepoCount: 3,
		UserCount: 5,
		Days:      30,
		IsActive:  true,
	})
}

func (s *modeService) GitHubClient(ctx context.Context) (github.Client, error) {
	mode, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if mode == models.ModeLive {
		return s.liveGitHub, nil
	}

	ds, err := s.repo.Mode.GetActiveDataSet(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return github.NewMockClient(42, 5, 30), nil
		}
		return nil, err
	}
	return github.NewMockClient(ds.Seed, ds.UserCount, ds.Days), nil
}

func (s *modeService) AIClient(ctx context.Context) (ai.Client, error) {
	mode, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if mode == models.ModeLive {
		return s.liveAI, nil
	}
	return s.mockAI, nil
}
