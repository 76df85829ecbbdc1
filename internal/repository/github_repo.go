package repository

import (
	"context"
	"time"

	"devpulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GitHubRepo interface {
	UpsertRepository(ctx context.Context, repo *models.Repository) error
	GetRepositoryByFullName(ctx context.Context, fullName string) (*models.Repository, error)
	ListRepositories(ctx context.Context) ([]models.Repository, error)
	SetLastSynced(ctx context.Context, repositoryID uint, at time.Time) error

	UpsertCommits(ctx context.Context, commits []models.Commit) error
	ListCommitsByAuthors(ctx context.Context, logins []string, from, to time.Time) ([]models.Commit, error)

	UpsertPullRequests(ctx context.Context, prs []models.PullRequest) error
	ListPullRequestsByAuthors(ctx context.Context, logins []string, from, to time.Time) ([]models.PullRequest, error)

	UpsertIssues(ctx context.Context, issues []models.Issue) error
	ListIssuesByAuthors(ctx context.Context, logins []string, from, to time.Time) ([]models.Issue, error)
}

type githubRepo struct {
	db *gorm.DB
}

func NewGitHubRepo(db *gorm.DB) GitHubRepo {
	return &githubRepo{db: db}
}

func (r *githubRepo) UpsertRepository(ctx context.Context, repo *models.Repository) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "full_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"provider_id", "owner", "name", "url", "private",
				"stars", "forks", "open_issues", "updated_at",
			}),
		},
	).Create(repo).Error
}

func (r *githubRepo) GetRepositoryByFullName(ctx context.Context, fullName string) (*models.Repository, error) {
	var repo models.Repository
	err := r.db.WithContext(ctx).Where("full_name = ?", fullName).First(&repo).Error
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

func (r *githubRepo) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	var repos []models.Repository
	err := r.db.WithContext(ctx).Order("full_name").Find(&repos).Error
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (r *githubRepo) SetLastSynced(ctx context.Context, repositoryID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Repository{}).
		Where("repository_id = ?", repositoryID).
		Update("last_synced_at", at).Error
}

func (r *githubRepo) UpsertCommits(ctx context.Context, commits []models.Commit) error {
	if len(commits) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "sha"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"message", "additions", "deletions",
			}),
		},
	).Create(&commits).Error
}

func (r *githubRepo) ListCommitsByAuthors(ctx context.Context, logins []string, from, to time.Time) ([]models.Commit, error) {
	var commits []models.Commit
	err := r.db.WithContext(ctx).
		Where("author_login IN ? AND authored_at >= ? AND authored_at < ?", logins, from, to).
		Order("authored_at").
		Find(&commits).Error
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func (r *githubRepo) UpsertPullRequests(ctx context.Context, prs []models.PullRequest) error {
	if len(prs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "state", "merged_at", "closed_at", "first_review_at",
				"additions", "deletions", "review_comments",
			}),
		},
	).Create(&prs).Error
}

func (r *githubRepo) ListPullRequestsByAuthors(ctx context.Context, logins []string, from, to time.Time) ([]models.PullRequest, error) {
	var prs []models.PullRequest
	err := r.db.WithContext(ctx).
		Where("author_login IN ? AND created_at >= ? AND created_at < ?", logins, from, to).
		Order("created_at").
		Find(&prs).Error
	if err != nil {
		return nil, err
	}
	return prs, nil
}

func (r *githubRepo) UpsertIssues(ctx context.Context, issues []models.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "state", "closed_at",
			}),
		},
	).Create(&issues).Error
}

func (r *githubRepo) ListIssuesByAuthors(ctx context.Context, logins []string, from, to time.Time) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.WithContext(ctx).
		Where("author_login IN ? AND created_at >= ? AND created_at < ?", logins, from, to).
		Order("created_at").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}
