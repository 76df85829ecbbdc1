package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"devpulse/internal/ai"
	"devpulse/internal/models"
	"devpulse/internal/repository"
	"devpulse/internal/service"
	"devpulse/internal/testhelpers"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type failingAI struct {
	calls int
}

func (f *failingAI) Summarize(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return "", errors.New("upstream timeout")
}

func setupInsights(t *testing.T, liveAI ai.Client, breaker *ai.Breaker) (*gorm.DB, service.InsightsService, service.ModeService) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	t.Cleanup(func() { testhelpers.CleanDB(t, db) })
	repo := repository.New(db)
	log := zap.NewNop()

	analytics := service.NewAnalyticsService(repo, log)
	mode := service.NewModeService(repo, nil, liveAI, ai.MockClient{}, log)
	return db, service.NewInsightsService(analytics, mode, breaker, log), mode
}

func TestInsightsService_SummaryInMockMode(t *testing.T) {
	db, svc, mode := setupInsights(t, nil, ai.NewBreaker(3, time.Minute))
	ctx := context.Background()

	if _, err := mode.Set(ctx, models.ModeMock, "test"); err != nil {
		t.Fatalf("failed to switch to mock mode: %v", err)
	}

	u := testhelpers.CreateTestUser(t, db, "alice", "core")
	gh := testhelpers.CreateTestRepo(t, db, "acme", "api")
	testhelpers.SeedCommit(t, db, gh.ID, u.Login, daysAgoAt(2, 10))

	insight, err := svc.Summary(ctx, u.ID, 30)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if insight.Summary == "" {
		t.Error("expected a non-empty summary")
	}
	if insight.UserID != u.ID || insight.WindowDays != 30 {
		t.Errorf("unexpected insight envelope: %+v", insight)
	}
	if insight.GeneratedAt.IsZero() {
		t.Error("expected generated_at to be set")
	}
}

func TestInsightsService_UpstreamFailureMapsToUnavailable(t *testing.T) {
	stub := &failingAI{}
	db, svc, _ := setupInsights(t, stub, ai.NewBreaker(5, time.Minute))
	ctx := context.Background()

	u := testhelpers.CreateTestUser(t, db, "bob", "core")

	_, err := svc.Summary(ctx, u.ID, 30)
	serr, ok := err.(*service.Error)
	if !ok || serr.Code != service.ErrorCodeAIUnavailable {
		t.Fatalf("expected AI_UNAVAILABLE, got %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("expected 2 bounded attempts, got %d", stub.calls)
	}
}

func TestInsightsService_OpenBreakerShortCircuits(t *testing.T) {
	stub := &failingAI{}
	db, svc, _ := setupInsights(t, stub, ai.NewBreaker(2, time.Hour))
	ctx := context.Background()

	u := testhelpers.CreateTestUser(t, db, "carol", "core")

	// Two failures trip the breaker.
	if _, err := svc.Summary(ctx, u.ID, 30); err == nil {
		t.Fatal("expected failure")
	}
	callsAfterTrip := stub.calls

	// With the breaker open the upstream is not touched again.
	_, err := svc.Summary(ctx, u.ID, 30)
	serr, ok := err.(*service.Error)
	if !ok || serr.Code != service.ErrorCodeAIUnavailable {
		t.Fatalf("expected AI_UNAVAILABLE from open breaker, got %v", err)
	}
	if stub.calls != callsAfterTrip {
		t.Errorf("open breaker must not call upstream: %d calls before, %d after",
			callsAfterTrip, stub.calls)
	}
}

func TestInsightsService_PromptReflectsActivity(t *testing.T) {
	db, svc, mode := setupInsights(t, nil, ai.NewBreaker(3, time.Minute))
	ctx := context.Background()

	if _, err := mode.Set(ctx, models.ModeMock, "test"); err != nil {
		t.Fatalf("failed to switch to mock mode: %v", err)
	}

	u := testhelpers.CreateTestUser(t, db, "dave", "core")

	// Window clamps to the 30-day default when out of range.
	insight, err := svc.Summary(ctx, u.ID, 0)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if insight.WindowDays != 30 {
		t.Errorf("expected default 30-day window, got %d", insight.WindowDays)
	}
	if !strings.Contains(insight.Summary, " ") {
		t.Error("expected a narrative summary")
	}
}
