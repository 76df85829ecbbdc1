package repository

import (
	"context"

	"devpulse/internal/models"

	"gorm.io/gorm"
)

type AuditRepo interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error)
	DeleteForActor(ctx context.Context, actorID string) error
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepo {
	return &auditRepo{db: db}
}

func (r *auditRepo) Append(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	q := r.db.WithContext(ctx).Where("actor_id = ?", actorID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditRepo) DeleteForActor(ctx context.Context, actorID string) error {
	return r.db.WithContext(ctx).Where("actor_id = ?", actorID).Delete(&models.AuditLog{}).Error
}
