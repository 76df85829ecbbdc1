package github

import (
	"context"
	"testing"
	"time"
)

func TestMockClient_Deterministic(t *testing.T) {
	ctx := context.Background()
	a := NewMockClient(42, 5, 30)
	b := NewMockClient(42, 5, 30)

	ra, err := a.GetRepository(ctx, "acme", "api")
	if err != nil {
		t.Fatalf("GetRepository failed: %v", err)
	}
	rb, _ := b.GetRepository(ctx, "acme", "api")
	if ra.ID != rb.ID || ra.StarsCount != rb.StarsCount {
		t.Errorf("same seed must yield identical repository data: %+v vs %+v", ra, rb)
	}

	ca, err := a.ListCommits(ctx, "acme", "api", time.Time{})
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}
	cb, _ := b.ListCommits(ctx, "acme", "api", time.Time{})
	if len(ca) == 0 {
		t.Fatal("expected generated commits")
	}
	if len(ca) != len(cb) {
		t.Fatalf("commit counts differ: %d vs %d", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i].SHA != cb[i].SHA {
			t.Fatalf("commit %d SHA differs: %s vs %s", i, ca[i].SHA, cb[i].SHA)
		}
	}
}

func TestMockClient_SeedChangesOutput(t *testing.T) {
	ctx := context.Background()
	a := NewMockClient(1, 5, 30)
	b := NewMockClient(2, 5, 30)

	ra, _ := a.GetRepository(ctx, "acme", "api")
	rb, _ := b.GetRepository(ctx, "acme", "api")
	if ra.ID == rb.ID && ra.StarsCount == rb.StarsCount {
		t.Error("different seeds should produce different repository data")
	}
}

func TestMockClient_SHAsDistinctAcrossOwners(t *testing.T) {
	ctx := context.Background()
	c := NewMockClient(42, 5, 30)

	// Same repo name under two owners must not share SHAs, or the second
	// repo's commits would collide on the unique index and never attach.
	acme, err := c.ListCommits(ctx, "acme", "api", time.Time{})
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}
	other, err := c.ListCommits(ctx, "other", "api", time.Time{})
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}
	if len(acme) == 0 || len(other) == 0 {
		t.Fatal("expected commits for both repos")
	}

	seen := make(map[string]bool, len(acme))
	for _, commit := range acme {
		seen[commit.SHA] = true
	}
	for _, commit := range other {
		if seen[commit.SHA] {
			t.Fatalf("SHA %s generated for both owners", commit.SHA)
		}
	}
}

func TestMockClient_SinceFiltersCommits(t *testing.T) {
	ctx := context.Background()
	c := NewMockClient(7, 3, 20)

	all, err := c.ListCommits(ctx, "acme", "api", time.Time{})
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}
	recent, err := c.ListCommits(ctx, "acme", "api", time.Now().UTC().AddDate(0, 0, -5))
	if err != nil {
		t.Fatalf("ListCommits failed: %v", err)
	}

	if len(recent) >= len(all) {
		t.Errorf("since filter should drop older commits: %d all, %d recent", len(all), len(recent))
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -5)
	for _, commit := range recent {
		if commit.Commit.Author.Date.Before(cutoff) {
			t.Errorf("commit %s authored %s, before cutoff %s",
				commit.SHA, commit.Commit.Author.Date, cutoff)
		}
	}
}

func TestMockClient_PullRequestShape(t *testing.T) {
	ctx := context.Background()
	c := NewMockClient(42, 5, 30)

	prs, err := c.ListPullRequests(ctx, "acme", "api")
	if err != nil {
		t.Fatalf("ListPullRequests failed: %v", err)
	}
	if len(prs) == 0 {
		t.Fatal("expected generated pull requests")
	}

	var merged int
	for _, pr := range prs {
		if pr.User.Login == "" {
			t.Error("pull request missing author login")
		}
		if pr.MergedAt != nil {
			merged++
			if pr.FirstReviewAt == nil {
				t.Error("merged pull request must carry a first review timestamp")
			}
			if pr.FirstReviewAt.Before(pr.CreatedAt) {
				t.Error("first review must come after creation")
			}
		}
	}
	if merged == 0 {
		t.Error("expected at least one merged pull request")
	}
}
