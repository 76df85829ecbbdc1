package service

import (
	"context"
	"errors"

	"devpulse/internal/crypto"
	"devpulse/internal/models"
	"devpulse/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PrivacyService stores sensitive fields encrypted at rest and records every
// access in the audit log.
type PrivacyService interface {
	Store(ctx context.Context, actorID, userID, dataType, dataKey, value string) error
	Get(ctx context.Context, actorID, userID, dataType, dataKey string) (string, error)
	Delete(ctx context.Context, actorID, userID, dataType, dataKey string) error
	DeleteUserData(ctx context.Context, userID string) error
	ListAudit(ctx context.Context, userID string, limit int) ([]models.AuditLog, error)
}

type privacyService struct {
	repo   *repository.Repository
	cipher *crypto.Cipher
	log    *zap.Logger
}

func NewPrivacyService(repo *repository.Repository, cipher *crypto.Cipher, log *zap.Logger) PrivacyService {
	return &privacyService{repo: repo, cipher: cipher, log: log}
}

func (s *privacyService) audit(ctx context.Context, actorID string, action models.AuditAction, dataType, dataKey string) {
	entry := &models.AuditLog{
		ActorID:     actorID,
		Action:      action,
		Resource:    "sensitive_data/" + dataType,
		ResourceKey: dataKey,
	}
	if err := s.repo.Audit.Append(ctx, entry); err != nil {
		s.log.Error("failed to append audit entry", zap.Error(err))
	}
}

func (s *privacyService) Store(ctx context.Context, actorID, userID, dataType, dataKey, value string) error {
	if dataType == "" || dataKey == "" {
		return NewErr(ErrorCodeBadRequest, "data type and key are required")
	}

	ciphertext, nonce, err := s.cipher.Encrypt([]byte(value))
	if err != nil {
		return err
	}

	d := &models.SensitiveData{
		UserID:     userID,
		DataType:   dataType,
		DataKey:    dataKey,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}
	if err := s.repo.Sensitive.Upsert(ctx, d); err != nil {
		return err
	}

	s.audit(ctx, actorID, models.AuditWrite, dataType, dataKey)
	return nil
}

func (s *privacyService) Get(ctx context.Context, actorID, userID, dataType, dataKey string) (string, error) {
	d, err := s.repo.Sensitive.Get(ctx, userID, dataType, dataKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NewErr(ErrorCodeNotFound, "sensitive field not found")
		}
		return "", err
	}

	plaintext, err := s.cipher.Decrypt(d.Ciphertext, d.Nonce)
	if err != nil {
		s.log.Error("failed to decrypt sensitive field",
			zap.String("user_id", userID), zap.String("data_type", dataType), zap.Error(err))
		return "", NewErr(ErrorCodeInternal, "failed to decrypt sensitive field")
	}

	s.audit(ctx, actorID, models.AuditRead, dataType, dataKey)
	return string(plaintext), nil
}

func (s *privacyService) Delete(ctx context.Context, actorID, userID, dataType, dataKey string) error {
	deleted, err := s.repo.Sensitive.Delete(ctx, userID, dataType, dataKey)
	if err != nil {
		return err
	}
	if !deleted {
		return NewErr(ErrorCodeNotFound, "sensitive field not found")
	}

	s.audit(ctx, actorID, models.AuditDelete, dataType, dataKey)
	return nil
}

// DeleteUserData removes everything DevPulse stores about the user in one
// transaction: sessions, settings, sensitive fields, burnout metrics and the
// audit trail.
func (s *privacyService) DeleteUserData(ctx context.Context, userID string) error {
	return s.repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Sessions.DeleteForUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSettings{}).Error; err != nil {
			return err
		}
		if err := s.repo.Sensitive.DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := s.repo.Metrics.DeleteBurnoutForUser(ctx, userID); err != nil {
			return err
		}
		if err := s.repo.Audit.DeleteForActor(ctx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.User{}).Error
	})
}

func (s *privacyService) ListAudit(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	return s.repo.Audit.ListByActor(ctx, userID, limit)
}
