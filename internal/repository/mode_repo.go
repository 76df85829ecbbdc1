package repository

import (
	"context"
	"errors"

	"devpulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ModeRepo interface {
	Get(ctx context.Context) (*models.AppMode, error)
	Set(ctx context.Context, mode models.Mode, updatedBy string) (*models.AppMode, error)

	GetActiveDataSet(ctx context.Context) (*models.MockDataSet, error)
	UpsertDataSet(ctx context.Context, ds *models.MockDataSet) error
}

type modeRepo struct {
	db *gorm.DB
}

func NewModeRepo(db *gorm.DB) ModeRepo {
	return &modeRepo{db: db}
}

// Get returns the singleton mode row, creating it as LIVE on first use.
func (r *modeRepo) Get(ctx context.Context) (*models.AppMode, error) {
	var m models.AppMode
	err := r.db.WithContext(ctx).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.AppMode{Mode: models.ModeLive}
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modeRepo) Set(ctx context.Context, mode models.Mode, updatedBy string) (*models.AppMode, error) {
	m, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	m.Mode = mode
	m.UpdatedBy = updatedBy
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *modeRepo) GetActiveDataSet(ctx context.Context) (*models.MockDataSet, error) {
	var ds models.MockDataSet
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&ds).Error
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

func (r *modeRepo) UpsertDataSet(ctx context.Context, ds *models.MockDataSet) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"seed", "repo_count", "user_count", "days", "is_active",
			}),
		},
	).Create(ds).Error
}
