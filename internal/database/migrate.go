package database

import (
	"errors"

	"devpulse/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Session{},
		&models.Repository{},
		&models.Commit{},
		&models.PullRequest{},
		&models.Issue{},
		&models.TeamMetric{},
		&models.BurnoutMetric{},
		&models.Retrospective{},
		&models.SensitiveData{},
		&models.AuditLog{},
		&models.AppMode{},
		&models.MockDataSet{},
	); err != nil {
		var pgErr *pgconn.PgError
		if ok := errors.As(err, &pgErr); ok {
			log.Error("migration failed", zap.String("pg_code", pgErr.Code), zap.Error(err))
		} else {
			log.Error("migration failed", zap.Error(err))
		}
		return err
	}

	log.Info("migration completed")
	return nil
}
