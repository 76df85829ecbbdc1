package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devpulse/internal/models"
	"devpulse/internal/repository"

	"go.uber.org/zap"
)

type TeamService interface {
	Overview(ctx context.Context, teamName string, days int) (*TeamReport, error)
	GenerateRetrospective(ctx context.Context, teamName string, days int) (*models.Retrospective, error)
	ListRetrospectives(ctx context.Context, teamName string, limit int) ([]models.Retrospective, error)
}

type teamService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTeamService(repo *repository.Repository, log *zap.Logger) TeamService {
	return &teamService{repo: repo, log: log}
}

type TeamReport struct {
	TeamName           string
	WindowStart        time.Time
	WindowEnd          time.Time
	MemberCount        int
	CommitCount        int
	PRCount            int
	MergedPRCount      int
	IssueCount         int
	AvgReviewLatencyH  float64
	CollaborationScore float64
}

// Collaboration score weights: reviewed-PR fraction, review speed, merge rate.
const (
	collabWeightReviewed = 0.4
	collabWeightSpeed    = 0.3
	collabWeightMerged   = 0.3
)

func (s *teamService) Overview(ctx context.Context, teamName string, days int) (*TeamReport, error) {
	days = clampWindow(days)
	from, to := window(days)

	members, err := s.repo.Users.GetTeamMembers(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, NewErr(ErrorCodeNotFound, "team not found or has no active members")
	}

	logins := make([]string, 0, len(members))
	for _, m := range members {
		logins = append(logins, m.Login)
	}

	commits, err := s.repo.GitHub.ListCommitsByAuthors(ctx, logins, from, to)
	if err != nil {
		return nil, err
	}
	prs, err := s.repo.GitHub.ListPullRequestsByAuthors(ctx, logins, from, to)
	if err != nil {
		return nil, err
	}
	issues, err := s.repo.GitHub.ListIssuesByAuthors(ctx, logins, from, to)
	if err != nil {
		return nil, err
	}

	report := &TeamReport{
		TeamName:    teamName,
		WindowStart: from,
		WindowEnd:   to,
		MemberCount: len(members),
		CommitCount: len(commits),
		PRCount:     len(prs),
		IssueCount:  len(issues),
	}

	var reviewed int
	for _, pr := range prs {
		if pr.MergedAt != nil {
			report.MergedPRCount++
		}
		if pr.FirstReviewAt != nil {
			reviewed++
		}
	}
	report.AvgReviewLatencyH = avgReviewLatencyHours(prs)
	report.CollaborationScore = collaborationScore(report.PRCount, reviewed, report.MergedPRCount, report.AvgReviewLatencyH)

	metric := &models.TeamMetric{
		TeamName:           teamName,
		WindowStart:        from,
		WindowEnd:          to,
		CommitCount:        report.CommitCount,
		PRCount:            report.PRCount,
		MergedPRCount:      report.MergedPRCount,
		IssueCount:         report.IssueCount,
		AvgReviewLatencyH:  report.AvgReviewLatencyH,
		CollaborationScore: report.CollaborationScore,
	}
	if err := s.repo.Metrics.UpsertTeamMetric(ctx, metric); err != nil {
		s.log.Error("failed to persist team metric", zap.String("team", teamName), zap.Error(err))
	}

	return report, nil
}

// collaborationScore is 0..100; zero when the window has no pull requests.
func collaborationScore(total, reviewed, merged int, avgLatencyHours float64) float64 {
	if total == 0 {
		return 0
	}
	reviewedFrac := float64(reviewed) / float64(total)
	mergedFrac := float64(merged) / float64(total)
	speed := 1 - clamp01(avgLatencyHours/latencyCeilingHours)

	return 100 * (collabWeightReviewed*reviewedFrac +
		collabWeightSpeed*speed +
		collabWeightMerged*mergedFrac)
}

func (s *teamService) GenerateRetrospective(ctx context.Context, teamName string, days int) (*models.Retrospective, error) {
	report, err := s.Overview(ctx, teamName, days)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.Users.GetTeamMembers(ctx, teamName)
	if err != nil {
		return nil, err
	}

	// Average the latest stored burnout risk across members; absent metrics
	// count as zero risk.
	var riskSum float64
	for _, m := range members {
		bm, err := s.repo.Metrics.GetLatestBurnoutForUser(ctx, m.ID)
		if err != nil {
			continue
		}
		riskSum += bm.RiskScore
	}
	avgRisk := riskSum / float64(len(members))

	health := 100 * (0.6*(report.CollaborationScore/100) + 0.4*(1-avgRisk))

	retro := &models.Retrospective{
		TeamName:        teamName,
		WindowStart:     report.WindowStart,
		WindowEnd:       report.WindowEnd,
		Positives:       retroPositives(report),
		Improvements:    retroImprovements(report, avgRisk),
		ActionItems:     retroActionItems(report, avgRisk),
		TeamHealthScore: health,
	}

	if err := s.repo.Retros.Create(ctx, retro); err != nil {
		return nil, err
	}

	return retro, nil
}

func retroPositives(r *TeamReport) string {
	var lines []string
	if r.CommitCount > 0 {
		lines = append(lines, fmt.Sprintf("%d commits landed across the team", r.CommitCount))
	}
	if r.MergedPRCount > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d pull requests merged", r.MergedPRCount, r.PRCount))
	}
	if r.AvgReviewLatencyH > 0 && r.AvgReviewLatencyH <= 24 {
		lines = append(lines, fmt.Sprintf("reviews arrive within a day on average (%.1fh)", r.AvgReviewLatencyH))
	}
	if len(lines) == 0 {
		lines = append(lines, "no activity recorded in this window")
	}
	return strings.Join(lines, "; ")
}

func retroImprovements(r *TeamReport, avgRisk float64) string {
	var lines []string
	if r.AvgReviewLatencyH > 24 {
		lines = append(lines, fmt.Sprintf("review latency averages %.1fh", r.AvgReviewLatencyH))
	}
	if r.PRCount > 0 && r.MergedPRCount*2 < r.PRCount {
		lines = append(lines, "less than half of opened pull requests got merged")
	}
	if avgRisk >= riskHighAt {
		lines = append(lines, "average burnout risk across members is high")
	}
	if len(lines) == 0 {
		lines = append(lines, "nothing stands out this window")
	}
	return strings.Join(lines, "; ")
}

func retroActionItems(r *TeamReport, avgRisk float64) string {
	var lines []string
	if r.AvgReviewLatencyH > 24 {
		lines = append(lines, "agree on a same-day first-review goal")
	}
	if avgRisk >= riskModerateAt {
		lines = append(lines, "check in on workload distribution and after-hours pushes")
	}
	if len(lines) == 0 {
		lines = append(lines, "keep the current cadence")
	}
	return strings.Join(lines, "; ")
}

func (s *teamService) ListRetrospectives(ctx context.Context, teamName string, limit int) ([]models.Retrospective, error) {
	return s.repo.Retros.ListByTeam(ctx, teamName, limit)
}
