package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devpulse/internal/models"
	"devpulse/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginOutput, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	repo       *repository.Repository
	sessionTTL time.Duration
	log        *zap.Logger
}

func NewAuthService(repo *repository.Repository, sessionTTL time.Duration, log *zap.Logger) AuthService {
	return &authService{repo: repo, sessionTTL: sessionTTL, log: log}
}

type RegisterInput struct {
	Login    string
	Name     string
	Email    string
	Password string
	TeamName string
}

type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Login = strings.TrimSpace(in.Login)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Login == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, NewErr(ErrorCodeBadRequest, "login, email and a password of at least 8 characters are required")
	}

	if _, err := s.repo.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, NewErr(ErrorCodeBadRequest, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.Users.GetByLogin(ctx, in.Login); err == nil {
		return nil, NewErr(ErrorCodeBadRequest, "login already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Login:        in.Login,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		TeamName:     in.TeamName,
		IsActive:     true,
	}

	err = s.repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Users.Create(ctx, u); err != nil {
			return err
		}
		return s.repo.Users.UpsertSettings(ctx, defaultSettings(u.ID))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("login", u.Login))
	return u, nil
}

func defaultSettings(userID string) *models.UserSettings {
	return &models.UserSettings{
		UserID:           userID,
		WorkdayStartHour: 9,
		WorkdayEndHour:   18,
		LateNightStart:   22,
		NotificationsOn:  true,
		Theme:            "system",
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewErr(ErrorCodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, NewErr(ErrorCodeUnauthorized, "invalid credentials")
	}
	if !u.IsActive {
		return nil, NewErr(ErrorCodeUnauthorized, "account is deactivated")
	}

	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.repo.Sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	return &LoginOutput{Token: sess.Token, ExpiresAt: sess.ExpiresAt, User: u}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.repo.Sessions.Delete(ctx, token)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, NewErr(ErrorCodeUnauthorized, "missing session token")
	}

	sess, err := s.repo.Sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewErr(ErrorCodeUnauthorized, "invalid session token")
		}
		return nil, err
	}

	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.repo.Sessions.Delete(ctx, token)
		return nil, NewErr(ErrorCodeUnauthorized, "session expired")
	}

	u, err := s.repo.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewErr(ErrorCodeUnauthorized, "invalid session token")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, NewErr(ErrorCodeUnauthorized, "account is deactivated")
	}

	return u, nil
}
