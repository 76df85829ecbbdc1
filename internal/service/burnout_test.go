package service

import (
	"math"
	"testing"
	"time"

	"devpulse/internal/models"
)

func TestWorkPattern_Fractions(t *testing.T) {
	p := WorkPattern{
		TotalCommits:     10,
		LateNightCommits: 5,
		WeekendCommits:   2,
		WindowDays:       10,
	}

	if got := p.LateNightFraction(); got != 0.5 {
		t.Errorf("late night fraction: expected 0.5, got %v", got)
	}
	if got := p.WeekendFraction(); got != 0.2 {
		t.Errorf("weekend fraction: expected 0.2, got %v", got)
	}
	if got := p.AvgDailyCommits(); got != 1.0 {
		t.Errorf("avg daily commits: expected 1.0, got %v", got)
	}
}

func TestWorkPattern_EmptyWindowIsZero(t *testing.T) {
	var p WorkPattern

	if p.LateNightFraction() != 0 || p.WeekendFraction() != 0 || p.AvgDailyCommits() != 0 {
		t.Errorf("empty pattern must produce zeroes, got %+v", p)
	}
	if got := RiskScore(p); got != 0 {
		t.Errorf("empty pattern risk: expected 0, got %v", got)
	}
	if got := RiskLevelFor(0); got != models.RiskLow {
		t.Errorf("zero risk level: expected LOW, got %s", got)
	}
}

func TestRiskScore_WeightedComposite(t *testing.T) {
	p := WorkPattern{
		TotalCommits:          10,
		LateNightCommits:      5,
		WeekendCommits:        2,
		WindowDays:            10,
		AvgReviewLatencyHours: 24,
	}

	// 0.30*0.5 + 0.25*0.2 + 0.25*(1/10) + 0.20*(24/48)
	expected := 0.325
	if got := RiskScore(p); math.Abs(got-expected) > 1e-9 {
		t.Errorf("risk score: expected %v, got %v", expected, got)
	}
	if got := RiskLevelFor(RiskScore(p)); got != models.RiskModerate {
		t.Errorf("risk level: expected MODERATE, got %s", got)
	}
}

func TestRiskScore_CeilingsClamp(t *testing.T) {
	p := WorkPattern{
		TotalCommits:          1000,
		LateNightCommits:      1000,
		WeekendCommits:        1000,
		WindowDays:            1,
		AvgReviewLatencyHours: 500,
	}

	if got := RiskScore(p); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("fully loaded pattern must score 1.0, got %v", got)
	}
	if got := RiskLevelFor(1.0); got != models.RiskCritical {
		t.Errorf("risk level: expected CRITICAL, got %s", got)
	}
}

func TestRiskLevelFor_Bands(t *testing.T) {
	cases := []struct {
		score float64
		level models.RiskLevel
	}{
		{0.0, models.RiskLow},
		{0.24, models.RiskLow},
		{0.25, models.RiskModerate},
		{0.49, models.RiskModerate},
		{0.50, models.RiskHigh},
		{0.74, models.RiskHigh},
		{0.75, models.RiskCritical},
	}
	for _, tc := range cases {
		if got := RiskLevelFor(tc.score); got != tc.level {
			t.Errorf("score %v: expected %s, got %s", tc.score, tc.level, got)
		}
	}
}

func TestIsLateNight(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		hour int
		late bool
	}{
		{23, true},
		{22, true},
		{2, true},
		{5, true},
		{6, false},
		{9, false},
		{21, false},
	}
	for _, tc := range cases {
		at := day.Add(time.Duration(tc.hour) * time.Hour)
		if got := isLateNight(at, 22); got != tc.late {
			t.Errorf("hour %d: expected late=%v, got %v", tc.hour, tc.late, got)
		}
	}

	// An earlier configured threshold widens the window.
	at := day.Add(20 * time.Hour)
	if !isLateNight(at, 20) {
		t.Error("hour 20 with threshold 20 must count as late night")
	}
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	if !isWeekend(saturday) || !isWeekend(sunday) {
		t.Error("saturday and sunday must count as weekend")
	}
	if isWeekend(monday) {
		t.Error("monday must not count as weekend")
	}
}

func TestAvgReviewLatencyHours(t *testing.T) {
	created := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	fast := created.Add(2 * time.Hour)
	slow := created.Add(10 * time.Hour)

	prs := []models.PullRequest{
		{CreatedAt: created, FirstReviewAt: &fast},
		{CreatedAt: created, FirstReviewAt: &slow},
		{CreatedAt: created}, // never reviewed, excluded
	}

	if got := avgReviewLatencyHours(prs); math.Abs(got-6.0) > 1e-9 {
		t.Errorf("avg latency: expected 6.0, got %v", got)
	}

	if got := avgReviewLatencyHours(nil); got != 0 {
		t.Errorf("no PRs: expected 0, got %v", got)
	}
}
