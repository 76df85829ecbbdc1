package service

import (
	"time"

	"devpulse/internal/models"
)

// Composite risk weights and normalization ceilings. Each component is
// normalized to [0,1] before weighting, so the score itself stays in [0,1].
const (
	weightLateNight = 0.30
	weightWeekend   = 0.25
	weightOverload  = 0.25
	weightLatency   = 0.20

	// overloadCeiling is the average daily commit count treated as full
	// overload; latencyCeilingHours likewise for review latency.
	overloadCeiling     = 10.0
	latencyCeilingHours = 48.0

	// lateNightEnd closes the late-night window in the morning.
	lateNightEnd = 6
)

// Risk bands.
const (
	riskModerateAt = 0.25
	riskHighAt     = 0.50
	riskCriticalAt = 0.75
)

// WorkPattern holds the windowed counts the burnout score is computed from.
type WorkPattern struct {
	TotalCommits          int
	LateNightCommits      int
	WeekendCommits        int
	WindowDays            int
	AvgReviewLatencyHours float64
}

func (p WorkPattern) LateNightFraction() float64 {
	if p.TotalCommits == 0 {
		return 0
	}
	return float64(p.LateNightCommits) / float64(p.TotalCommits)
}

func (p WorkPattern) WeekendFraction() float64 {
	if p.TotalCommits == 0 {
		return 0
	}
	return float64(p.WeekendCommits) / float64(p.TotalCommits)
}

func (p WorkPattern) AvgDailyCommits() float64 {
	if p.WindowDays == 0 {
		return 0
	}
	return float64(p.TotalCommits) / float64(p.WindowDays)
}

// RiskScore computes the weighted composite burnout risk in [0,1].
func RiskScore(p WorkPattern) float64 {
	overload := clamp01(p.AvgDailyCommits() / overloadCeiling)
	latency := clamp01(p.AvgReviewLatencyHours / latencyCeilingHours)

	return weightLateNight*p.LateNightFraction() +
		weightWeekend*p.WeekendFraction() +
		weightOverload*overload +
		weightLatency*latency
}

func RiskLevelFor(score float64) models.RiskLevel {
	switch {
	case score >= riskCriticalAt:
		return models.RiskCritical
	case score >= riskHighAt:
		return models.RiskHigh
	case score >= riskModerateAt:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// isLateNight reports whether the hour falls in [lateStart, 24) or [0, 6).
func isLateNight(t time.Time, lateStart int) bool {
	h := t.Hour()
	return h >= lateStart || h < lateNightEnd
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// avgReviewLatencyHours averages created -> first-review time over the PRs
// that have a recorded first review.
func avgReviewLatencyHours(prs []models.PullRequest) float64 {
	var total float64
	var n int
	for _, pr := range prs {
		if pr.FirstReviewAt == nil {
			continue
		}
		total += pr.FirstReviewAt.Sub(pr.CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
