package repository

import (
	"context"

	"devpulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SensitiveRepo interface {
	Upsert(ctx context.Context, d *models.SensitiveData) error
	Get(ctx context.Context, userID, dataType, dataKey string) (*models.SensitiveData, error)
	Delete(ctx context.Context, userID, dataType, dataKey string) (bool, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

type sensitiveRepo struct {
	db *gorm.DB
}

func NewSensitiveRepo(db *gorm.DB) SensitiveRepo {
	return &sensitiveRepo{db: db}
}

func (r *sensitiveRepo) Upsert(ctx context.Context, d *models.SensitiveData) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "data_type"}, {Name: "data_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"ciphertext", "nonce", "updated_at"}),
		},
	).Create(d).Error
}

func (r *sensitiveRepo) Get(ctx context.Context, userID, dataType, dataKey string) (*models.SensitiveData, error) {
	var d models.SensitiveData
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND data_type = ? AND data_key = ?", userID, dataType, dataKey).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *sensitiveRepo) Delete(ctx context.Context, userID, dataType, dataKey string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND data_type = ? AND data_key = ?", userID, dataType, dataKey).
		Delete(&models.SensitiveData{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sensitiveRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SensitiveData{}).Error
}
