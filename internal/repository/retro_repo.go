package repository

import (
	"context"

	"devpulse/internal/models"

	"gorm.io/gorm"
)

type RetroRepo interface {
	Create(ctx context.Context, r *models.Retrospective) error
	ListByTeam(ctx context.Context, teamName string, limit int) ([]models.Retrospective, error)
}

type retroRepo struct {
	db *gorm.DB
}

func NewRetroRepo(db *gorm.DB) RetroRepo {
	return &retroRepo{db: db}
}

func (r *retroRepo) Create(ctx context.Context, retro *models.Retrospective) error {
	return r.db.WithContext(ctx).Create(retro).Error
}

func (r *retroRepo) ListByTeam(ctx context.Context, teamName string, limit int) ([]models.Retrospective, error) {
	var retros []models.Retrospective
	q := r.db.WithContext(ctx).Where("team_name = ?", teamName).Order("generated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&retros).Error
	if err != nil {
		return nil, err
	}
	return retros, nil
}
