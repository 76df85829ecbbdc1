package service

import (
	"context"
	"errors"

	"devpulse/internal/models"
	"devpulse/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID string, in SettingsInput) (*models.UserSettings, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{repo: repo, log: log}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewErr(ErrorCodeNotFound, "user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	settings, err := s.repo.Users.GetSettings(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

type SettingsInput struct {
	WorkdayStartHour  int
	WorkdayEndHour    int
	LateNightStart    int
	NotificationsOn   bool
	Theme             string
	WeeklyReportEmail bool
}

func (s *userService) UpdateSettings(ctx context.Context, userID string, in SettingsInput) (*models.UserSettings, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	if in.WorkdayStartHour < 0 || in.WorkdayStartHour > 23 ||
		in.WorkdayEndHour < 0 || in.WorkdayEndHour > 23 ||
		in.LateNightStart < 18 || in.LateNightStart > 23 {
		return nil, NewErr(ErrorCodeBadRequest, "hours out of range")
	}

	settings := &models.UserSettings{
		UserID:            userID,
		WorkdayStartHour:  in.WorkdayStartHour,
		WorkdayEndHour:    in.WorkdayEndHour,
		LateNightStart:    in.LateNightStart,
		NotificationsOn:   in.NotificationsOn,
		Theme:             in.Theme,
		WeeklyReportEmail: in.WeeklyReportEmail,
	}
	if err := s.repo.Users.UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
