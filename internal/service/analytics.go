package service

import (
	"context"
	"errors"
	"time"

	"devpulse/internal/models"
	"devpulse/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
)

type AnalyticsService interface {
	Productivity(ctx context.Context, userID string, days int) (*ProductivityReport, error)
	Burnout(ctx context.Context, userID string, days int) (*BurnoutReport, error)
}

type analyticsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAnalyticsService(repo *repository.Repository, log *zap.Logger) AnalyticsService {
	return &analyticsService{repo: repo, log: log}
}

type DailyActivity struct {
	Date         string
	Commits      int
	PRsOpened    int
	PRsMerged    int
	IssuesClosed int
}

type ProductivityReport struct {
	UserID            string
	Login             string
	WindowStart       time.Time
	WindowEnd         time.Time
	Days              []DailyActivity
	TotalCommits      int
	TotalPRs          int
	MergedPRs         int
	ClosedIssues      int
	AvgDailyCommits   float64
	LateNightFraction float64
	WeekendFraction   float64
}

type BurnoutReport struct {
	UserID            string
	WindowStart       time.Time
	WindowEnd         time.Time
	TotalCommits      int
	LateNightFraction float64
	WeekendFraction   float64
	AvgDailyCommits   float64
	ReviewLatencyH    float64
	RiskScore         float64
	RiskLevel         models.RiskLevel
}

func clampWindow(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	if days > maxWindowDays {
		return maxWindowDays
	}
	return days
}

// window covers the last `days` calendar days including today: it starts at
// midnight so every record in [start, now) lands in a daily bucket.
func window(days int) (time.Time, time.Time) {
	end := time.Now().UTC()
	start := end.Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
	return start, end
}

func (s *analyticsService) Productivity(ctx context.Context, userID string, days int) (*ProductivityReport, error) {
	days = clampWindow(days)
	from, to := window(days)

	u, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewErr(ErrorCodeNotFound, "user not found")
		}
		return nil, err
	}

	lateStart := s.lateNightStart(ctx, userID)

	commits, err := s.repo.GitHub.ListCommitsByAuthors(ctx, []string{u.Login}, from, to)
	if err != nil {
		return nil, err
	}
	prs, err := s.repo.GitHub.ListPullRequestsByAuthors(ctx, []string{u.Login}, from, to)
	if err != nil {
		return nil, err
	}
	issues, err := s.repo.GitHub.ListIssuesByAuthors(ctx, []string{u.Login}, from, to)
	if err != nil {
		return nil, err
	}

	report := &ProductivityReport{
		UserID:      u.ID,
		Login:       u.Login,
		WindowStart: from,
		WindowEnd:   to,
		Days:        make([]DailyActivity, days),
	}

	// Pre-fill the buckets so charts get a continuous series even on empty
	// windows. The last bucket is today.
	byDay := make(map[string]*DailyActivity, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		report.Days[i] = DailyActivity{Date: date}
		byDay[date] = &report.Days[i]
	}

	var lateNight, weekend int
	for _, c := range commits {
		report.TotalCommits++
		if isLateNight(c.AuthoredAt, lateStart) {
			lateNight++
		}
		if isWeekend(c.AuthoredAt) {
			weekend++
		}
		if b, ok := byDay[c.AuthoredAt.Format("2006-01-02")]; ok {
			b.Commits++
		}
	}

	for _, pr := range prs {
		report.TotalPRs++
		if b, ok := byDay[pr.CreatedAt.Format("2006-01-02")]; ok {
			b.PRsOpened++
		}
		if pr.MergedAt != nil {
			report.MergedPRs++
			if b, ok := byDay[pr.MergedAt.Format("2006-01-02")]; ok {
				b.PRsMerged++
			}
		}
	}

	for _, is := range issues {
		if is.ClosedAt == nil {
			continue
		}
		report.ClosedIssues++
		if b, ok := byDay[is.ClosedAt.Format("2006-01-02")]; ok {
			b.IssuesClosed++
		}
	}

	pattern := WorkPattern{
		TotalCommits:     report.TotalCommits,
		LateNightCommits: lateNight,
		WeekendCommits:   weekend,
		WindowDays:       days,
	}
	report.AvgDailyCommits = pattern.AvgDailyCommits()
	report.LateNightFraction = pattern.LateNightFraction()
	report.WeekendFraction = pattern.WeekendFraction()

	return report, nil
}

func (s *analyticsService) Burnout(ctx context.Context, userID string, days int) (*BurnoutReport, error) {
	days = clampWindow(days)
	from, to := window(days)

	u, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewErr(ErrorCodeNotFound, "user not found")
		}
		return nil, err
	}

	lateStart := s.lateNightStart(ctx, userID)

	commits, err := s.repo.GitHub.ListCommitsByAuthors(ctx, []string{u.Login}, from, to)
	if err != nil {
		return nil, err
	}
	prs, err := s.repo.GitHub.ListPullRequestsByAuthors(ctx, []string{u.Login}, from, to)
	if err != nil {
		return nil, err
	}

	pattern := WorkPattern{
		TotalCommits:          len(commits),
		WindowDays:            days,
		AvgReviewLatencyHours: avgReviewLatencyHours(prs),
	}
	for _, c := range commits {
		if isLateNight(c.AuthoredAt, lateStart) {
			pattern.LateNightCommits++
		}
		if isWeekend(c.AuthoredAt) {
			pattern.WeekendCommits++
		}
	}

	score := RiskScore(pattern)
	level := RiskLevelFor(score)

	metric := &models.BurnoutMetric{
		UserID:            u.ID,
		WindowStart:       from,
		WindowEnd:         to,
		LateNightFraction: pattern.LateNightFraction(),
		WeekendFraction:   pattern.WeekendFraction(),
		AvgDailyCommits:   pattern.AvgDailyCommits(),
		ReviewLatencyH:    pattern.AvgReviewLatencyHours,
		RiskScore:         score,
		RiskLevel:         level,
	}
	if err := s.repo.Metrics.UpsertBurnoutMetric(ctx, metric); err != nil {
		s.log.Error("failed to persist burnout metric", zap.String("user_id", u.ID), zap.Error(err))
	}

	return &BurnoutReport{
		UserID:            u.ID,
		WindowStart:       from,
		WindowEnd:         to,
		TotalCommits:      pattern.TotalCommits,
		LateNightFraction: pattern.LateNightFraction(),
		WeekendFraction:   pattern.WeekendFraction(),
		AvgDailyCommits:   pattern.AvgDailyCommits(),
		ReviewLatencyH:    pattern.AvgReviewLatencyHours,
		RiskScore:         score,
		RiskLevel:         level,
	}, nil
}

// lateNightStart reads the user's configured late-night threshold, defaulting
// to 22:00 when no settings row exists.
func (s *analyticsService) lateNightStart(ctx context.Context, userID string) int {
	settings, err := s.repo.Users.GetSettings(ctx, userID)
	if err != nil {
		return 22
	}
	return settings.LateNightStart
}
