package github

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// MockClient generates a deterministic activity stream for demos and offline
// development. The same seed and repo always produce the same data.
type MockClient struct {
	Seed      int64
	UserCount int
	Days      int
}

func NewMockClient(seed int64, userCount, days int) *MockClient {
	if userCount <= 0 {
		userCount = 5
	}
	if days <= 0 {
		days = 30
	}
	return &MockClient{Seed: seed, UserCount: userCount, Days: days}
}

func (m *MockClient) rng(owner, name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(owner + "/" + name))
	return rand.New(rand.NewSource(m.Seed ^ int64(h.Sum64())))
}

func (m *MockClient) login(i int) string {
	return fmt.Sprintf("dev-%c", 'a'+i%26)
}

func (m *MockClient) GetRepository(ctx context.Context, owner, name string) (*Repository, error) {
	r := m.rng(owner, name)
	repo := &Repository{
		ID:              1000 + r.Int63n(1<<40),
		Name:            name,
		FullName:        owner + "/" + name,
		URL:             "https://github.com/" + owner + "/" + name,
		ForksCount:      r.Intn(120),
		StarsCount:      r.Intn(2000),
		OpenIssuesCount: r.Intn(50),
	}
	repo.Owner.Login = owner
	return repo, nil
}

func (m *MockClient) ListCommits(ctx context.Context, owner, name string, since time.Time) ([]Commit, error) {
	r := m.rng(owner, name)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -m.Days)

	var commits []Commit
	for day := 0; day < m.Days; day++ {
		date := start.AddDate(0, 0, day)
		for i := 0; i < m.UserCount; i++ {
			n := r.Intn(4)
			// Some authors keep unhealthy hours; that is what the burnout
			// dashboards are for.
			lateNightProne := i%3 == 0
			for c := 0; c < n; c++ {
				hour := 9 + r.Intn(9)
				if lateNightProne && r.Intn(3) == 0 {
					hour = 22 + r.Intn(2)
				}
				at := date.Add(time.Duration(hour)*time.Hour + time.Duration(r.Intn(60))*time.Minute)
				if at.Before(since) {
					continue
				}
				commit := Commit{
					SHA: fmt.Sprintf("%s-%s-%04d%02d%02d", owner, name, day, i, c),
				}
				commit.Commit.Message = fmt.Sprintf("mock: change %d on day %d", c, day)
				commit.Commit.Author.Name = m.login(i)
				commit.Commit.Author.Date = at
				commit.Author = &struct {
					Login string `json:"login"`
				}{Login: m.login(i)}
				commit.Stats.Additions = r.Intn(200)
				commit.Stats.Deletions = r.Intn(80)
				commits = append(commits, commit)
			}
		}
	}

	return commits, nil
}

func (m *MockClient) ListPullRequests(ctx context.Context, owner, name string) ([]PullRequest, error) {
	r := m.rng(owner, name)
	end := time.Now().UTC()
	count := m.Days / 2
	// Provider IDs must not repeat across repos; a per-repo base keeps the
	// global unique index happy.
	base := r.Int63n(1 << 40)

	prs := make([]PullRequest, 0, count)
	for i := 0; i < count; i++ {
		created := end.AddDate(0, 0, -r.Intn(m.Days)).Add(-time.Duration(r.Intn(12)) * time.Hour)
		pr := PullRequest{
			ID:             base + int64(i),
			Number:         i + 1,
			Title:          fmt.Sprintf("mock: pull request %d", i+1),
			State:          "open",
			CreatedAt:      created,
			Additions:      r.Intn(400),
			Deletions:      r.Intn(150),
			ReviewComments: r.Intn(8),
		}
		pr.User.Login = m.login(r.Intn(m.UserCount))

		if r.Intn(4) > 0 {
			review := created.Add(time.Duration(1+r.Intn(48)) * time.Hour)
			pr.FirstReviewAt = &review
			merged := review.Add(time.Duration(1+r.Intn(24)) * time.Hour)
			pr.MergedAt = &merged
			pr.ClosedAt = &merged
			pr.State = "closed"
		}
		prs = append(prs, pr)
	}

	return prs, nil
}

func (m *MockClient) ListIssues(ctx context.Context, owner, name string) ([]Issue, error) {
	r := m.rng(owner, name)
	end := time.Now().UTC()
	count := m.Days / 3
	base := r.Int63n(1 << 40)

	issues := make([]Issue, 0, count)
	for i := 0; i < count; i++ {
		created := end.AddDate(0, 0, -r.Intn(m.Days))
		is := Issue{
			ID:        base + int64(i),
			Number:    i + 1,
			Title:     fmt.Sprintf("mock: issue %d", i+1),
			State:     "open",
			CreatedAt: created,
		}
		is.User.Login = m.login(r.Intn(m.UserCount))
		if r.Intn(2) == 0 {
			closed := created.Add(time.Duration(1+r.Intn(96)) * time.Hour)
			is.ClosedAt = &closed
			is.State = "closed"
		}
		issues = append(issues, is)
	}

	return issues, nil
}
