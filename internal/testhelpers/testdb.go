package testhelpers

import (
	"testing"
	"time"

	"devpulse/internal/database"
	"devpulse/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	logger := zap.NewNop()
	if err := database.AutoMigrate(db, logger); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func CleanDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM sensitive_data")
	db.Exec("DELETE FROM burnout_metrics")
	db.Exec("DELETE FROM team_metrics")
	db.Exec("DELETE FROM retrospectives")
	db.Exec("DELETE FROM issues")
	db.Exec("DELETE FROM pull_requests")
	db.Exec("DELETE FROM commits")
	db.Exec("DELETE FROM repositories")
	db.Exec("DELETE FROM sessions")
	db.Exec("DELETE FROM user_settings")
	db.Exec("DELETE FROM users")
}

// CreateTestUser inserts a user with a known password ("password123!").
func CreateTestUser(t *testing.T, db *gorm.DB, login, team string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Login:        login,
		Name:         login,
		Email:        login + "@example.com",
		PasswordHash: string(hash),
		TeamName:     team,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateTestRepo inserts a repository row.
func CreateTestRepo(t *testing.T, db *gorm.DB, owner, name string) *models.Repository {
	t.Helper()

	repo := &models.Repository{
		ProviderID: time.Now().UnixNano(),
		Owner:      owner,
		Name:       name,
		FullName:   owner + "/" + name,
		URL:        "https://github.com/" + owner + "/" + name,
	}
	if err := db.Create(repo).Error; err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	return repo
}

// SeedCommit inserts a commit authored by login at the given time.
func SeedCommit(t *testing.T, db *gorm.DB, repoID uint, login string, at time.Time) {
	t.Helper()

	c := &models.Commit{
		SHA:          uuid.NewString(),
		RepositoryID: repoID,
		AuthorLogin:  login,
		AuthorName:   login,
		Message:      "test commit",
		AuthoredAt:   at,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to seed commit: %v", err)
	}
}

// SeedPullRequest inserts a PR created at the given time with an optional
// first-review delay.
func SeedPullRequest(t *testing.T, db *gorm.DB, repoID uint, login string, createdAt time.Time, reviewAfter time.Duration) {
	t.Helper()

	pr := &models.PullRequest{
		ProviderID:   time.Now().UnixNano(),
		RepositoryID: repoID,
		Number:       int(time.Now().UnixNano() % 100000),
		AuthorLogin:  login,
		Title:        "test pr",
		State:        models.PRStateOpen,
		CreatedAt:    createdAt,
	}
	if reviewAfter > 0 {
		review := createdAt.Add(reviewAfter)
		merged := review.Add(time.Hour)
		pr.FirstReviewAt = &review
		pr.MergedAt = &merged
		pr.State = models.PRStateMerged
	}
	if err := db.Create(pr).Error; err != nil {
		t.Fatalf("failed to seed pull request: %v", err)
	}
}
