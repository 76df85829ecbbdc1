package repository

import "gorm.io/gorm"

type Repository struct {
	DB        *gorm.DB
	Users     UsersRepo
	Sessions  SessionsRepo
	GitHub    GitHubRepo
	Metrics   MetricsRepo
	Retros    RetroRepo
	Sensitive SensitiveRepo
	Audit     AuditRepo
	Mode      ModeRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:        db,
		Users:     NewUsersRepo(db),
		Sessions:  NewSessionsRepo(db),
		GitHub:    NewGitHubRepo(db),
		Metrics:   NewMetricsRepo(db),
		Retros:    NewRetroRepo(db),
		Sensitive: NewSensitiveRepo(db),
		Audit:     NewAuditRepo(db),
		Mode:      NewModeRepo(db),
	}
}

func New(db *gorm.DB) *Repository {
	return buildRepository(db)
}
