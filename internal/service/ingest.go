package service

import (
	"context"
	"strings"
	"time"

	"devpulse/internal/github"
	"devpulse/internal/models"
	"devpulse/internal/repository"

	"go.uber.org/zap"
)

type IngestService interface {
	SyncRepository(ctx context.Context, owner, name string) (*SyncResult, error)
	SyncAll(ctx context.Context) error
	ListRepositories(ctx context.Context) ([]models.Repository, error)
	// RunScheduler re-syncs indexed repositories until ctx is cancelled.
	RunScheduler(ctx context.Context, interval time.Duration)
}

type ingestService struct {
	repo *repository.Repository
	mode ModeService
	log  *zap.Logger
}

func NewIngestService(repo *repository.Repository, mode ModeService, log *zap.Logger) IngestService {
	return &ingestService{repo: repo, mode: mode, log: log}
}

type SyncResult struct {
	Repository   *models.Repository
	Commits      int
	PullRequests int
	Issues       int
}

func (s *ingestService) SyncRepository(ctx context.Context, owner, name string) (*SyncResult, error) {
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" {
		return nil, NewErr(ErrorCodeBadRequest, "owner and name are required")
	}

	client, err := s.mode.GitHubClient(ctx)
	if err != nil {
		return nil, err
	}

	ghRepo, err := client.GetRepository(ctx, owner, name)
	if err != nil {
		s.log.Warn("repository fetch failed",
			zap.String("owner", owner), zap.String("name", name), zap.Error(err))
		return nil, NewErr(ErrorCodeNotFound, "repository not found on provider")
	}

	record := &models.Repository{
		ProviderID: ghRepo.ID,
		Owner:      ghRepo.Owner.Login,
		Name:       ghRepo.Name,
		FullName:   ghRepo.FullName,
		URL:        ghRepo.URL,
		Private:    ghRepo.Private,
		Stars:      ghRepo.StarsCount,
		Forks:      ghRepo.ForksCount,
		OpenIssues: ghRepo.OpenIssuesCount,
	}
	if record.FullName == "" {
		record.FullName = owner + "/" + name
	}
	if err := s.repo.GitHub.UpsertRepository(ctx, record); err != nil {
		return nil, err
	}
	// Re-read so the row carries its primary key after an upsert conflict.
	record, err = s.repo.GitHub.GetRepositoryByFullName(ctx, record.FullName)
	if err != nil {
		return nil, err
	}

	var since time.Time
	if record.LastSyncedAt != nil {
		since = *record.LastSyncedAt
	}

	ghCommits, err := client.ListCommits(ctx, owner, name, since)
	if err != nil {
		return nil, err
	}
	commits := make([]models.Commit, 0, len(ghCommits))
	for _, c := range ghCommits {
		login := c.Commit.Author.Name
		if c.Author != nil && c.Author.Login != "" {
			login = c.Author.Login
		}
		commits = append(commits, models.Commit{
			SHA:          c.SHA,
			RepositoryID: record.ID,
			AuthorLogin:  login,
			AuthorName:   c.Commit.Author.Name,
			Message:      c.Commit.Message,
			Additions:    c.Stats.Additions,
			Deletions:    c.Stats.Deletions,
			AuthoredAt:   c.Commit.Author.Date,
		})
	}
	if err := s.repo.GitHub.UpsertCommits(ctx, commits); err != nil {
		return nil, err
	}

	ghPRs, err := client.ListPullRequests(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	prs := make([]models.PullRequest, 0, len(ghPRs))
	for _, pr := range ghPRs {
		prs = append(prs, models.PullRequest{
			ProviderID:     pr.ID,
			RepositoryID:   record.ID,
			Number:         pr.Number,
			AuthorLogin:    pr.User.Login,
			Title:          pr.Title,
			State:          prState(pr),
			CreatedAt:      pr.CreatedAt,
			MergedAt:       pr.MergedAt,
			ClosedAt:       pr.ClosedAt,
			FirstReviewAt:  pr.FirstReviewAt,
			Additions:      pr.Additions,
			Deletions:      pr.Deletions,
			ReviewComments: pr.ReviewComments,
		})
	}
	if err := s.repo.GitHub.UpsertPullRequests(ctx, prs); err != nil {
		return nil, err
	}

	ghIssues, err := client.ListIssues(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	issues := make([]models.Issue, 0, len(ghIssues))
	for _, is := range ghIssues {
		state := models.IssueStateOpen
		if is.ClosedAt != nil {
			state = models.IssueStateClosed
		}
		issues = append(issues, models.Issue{
			ProviderID:   is.ID,
			RepositoryID: record.ID,
			Number:       is.Number,
			AuthorLogin:  is.User.Login,
			Title:        is.Title,
			State:        state,
			CreatedAt:    is.CreatedAt,
			ClosedAt:     is.ClosedAt,
		})
	}
	if err := s.repo.GitHub.UpsertIssues(ctx, issues); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.GitHub.SetLastSynced(ctx, record.ID, now); err != nil {
		return nil, err
	}
	record.LastSyncedAt = &now

	s.log.Info("repository synced",
		zap.String("repo", record.FullName),
		zap.Int("commits", len(commits)),
		zap.Int("pull_requests", len(prs)),
		zap.Int("issues", len(issues)),
	)

	return &SyncResult{
		Repository:   record,
		Commits:      len(commits),
		PullRequests: len(prs),
		Issues:       len(issues),
	}, nil
}

func prState(pr github.PullRequest) models.PullRequestState {
	switch {
	case pr.MergedAt != nil:
		return models.PRStateMerged
	case pr.ClosedAt != nil:
		return models.PRStateClosed
	default:
		return models.PRStateOpen
	}
}

func (s *ingestService) SyncAll(ctx context.Context) error {
	repos, err := s.repo.GitHub.ListRepositories(ctx)
	if err != nil {
		return err
	}
	for _, r := range repos {
		if _, err := s.SyncRepository(ctx, r.Owner, r.Name); err != nil {
			s.log.Warn("scheduled sync failed", zap.String("repo", r.FullName), zap.Error(err))
		}
	}
	return nil
}

func (s *ingestService) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	return s.repo.GitHub.ListRepositories(ctx)
}

func (s *ingestService) RunScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncAll(ctx); err != nil {
				s.log.Error("scheduled sync pass failed", zap.Error(err))
			}
		}
	}
}
