package repository

import (
	"context"

	"devpulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetricsRepo interface {
	UpsertBurnoutMetric(ctx context.Context, m *models.BurnoutMetric) error
	GetLatestBurnoutForUser(ctx context.Context, userID string) (*models.BurnoutMetric, error)
	DeleteBurnoutForUser(ctx context.Context, userID string) error

	UpsertTeamMetric(ctx context.Context, m *models.TeamMetric) error
	GetLatestTeamMetric(ctx context.Context, teamName string) (*models.TeamMetric, error)
}

type metricsRepo struct {
	db *gorm.DB
}

func NewMetricsRepo(db *gorm.DB) MetricsRepo {
	return &metricsRepo{db: db}
}

func (r *metricsRepo) UpsertBurnoutMetric(ctx context.Context, m *models.BurnoutMetric) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "window_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"window_end", "late_night_fraction", "weekend_fraction",
				"avg_daily_commits", "review_latency_hours", "risk_score", "risk_level",
			}),
		},
	).Create(m).Error
}

func (r *metricsRepo) GetLatestBurnoutForUser(ctx context.Context, userID string) (*models.BurnoutMetric, error) {
	var m models.BurnoutMetric
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("window_start DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metricsRepo) DeleteBurnoutForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.BurnoutMetric{}).Error
}

func (r *metricsRepo) UpsertTeamMetric(ctx context.Context, m *models.TeamMetric) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "team_name"}, {Name: "window_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"window_end", "commit_count", "pr_count", "merged_pr_count",
				"issue_count", "avg_review_latency_hours", "collaboration_score",
			}),
		},
	).Create(m).Error
}

func (r *metricsRepo) GetLatestTeamMetric(ctx context.Context, teamName string) (*models.TeamMetric, error) {
	var m models.TeamMetric
	err := r.db.WithContext(ctx).
		Where("team_name = ?", teamName).
		Order("window_start DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
