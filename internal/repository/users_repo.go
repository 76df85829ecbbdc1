package repository

import (
	"context"

	"devpulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsersRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetTeamMembers(ctx context.Context, teamName string) ([]models.User, error)
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpsertSettings(ctx context.Context, s *models.UserSettings) error
}

type usersRepo struct {
	db *gorm.DB
}

func NewUsersRepo(db *gorm.DB) UsersRepo {
	return &usersRepo{db: db}
}

func (r *usersRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usersRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usersRepo) GetTeamMembers(ctx context.Context, teamName string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("team_name = ? AND is_active = ?", teamName, true).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *usersRepo) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	var s models.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *usersRepo) UpsertSettings(ctx context.Context, s *models.UserSettings) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"workday_start_hour", "workday_end_hour", "late_night_start",
				"notifications_on", "theme", "weekly_report_email", "updated_at",
			}),
		},
	).Create(s).Error
}
