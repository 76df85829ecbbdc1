package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Repository is the subset of the GitHub repository payload DevPulse keeps.
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	URL      string `json:"html_url"`
	Private  bool   `json:"private"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
	ForksCount      int `json:"forks_count"`
	StarsCount      int `json:"stargazers_count"`
	OpenIssuesCount int `json:"open_issues_count"`
}

type Commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
	Stats struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
	} `json:"stats"`
}

type PullRequest struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	CreatedAt      time.Time  `json:"created_at"`
	MergedAt       *time.Time `json:"merged_at"`
	ClosedAt       *time.Time `json:"closed_at"`
	FirstReviewAt  *time.Time `json:"-"`
	Additions      int        `json:"additions"`
	Deletions      int        `json:"deletions"`
	ReviewComments int        `json:"review_comments"`
}

type Issue struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	// Pull request issues carry this key; we keep plain issues only.
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

type review struct {
	SubmittedAt time.Time `json:"submitted_at"`
}

// Client abstracts the GitHub REST API so mock mode can substitute a generator.
type Client interface {
	GetRepository(ctx context.Context, owner, name string) (*Repository, error)
	ListCommits(ctx context.Context, owner, name string, since time.Time) ([]Commit, error)
	ListPullRequests(ctx context.Context, owner, name string) ([]PullRequest, error)
	ListIssues(ctx context.Context, owner, name string) ([]Issue, error)
}

// RESTClient talks to the GitHub REST API.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewRESTClient(baseURL, token string) *RESTClient {
	return &RESTClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (c *RESTClient) get(ctx context.Context, url string, out any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github request failed: status %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", fmt.Errorf("failed to decode github response: %w", err)
	}

	return extractNextLink(resp.Header.Get("Link")), nil
}

func (c *RESTClient) GetRepository(ctx context.Context, owner, name string) (*Repository, error) {
	var repo Repository
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name)
	if _, err := c.get(ctx, url, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// ListCommits fetches commits since the given time, following Link-header pagination.
func (c *RESTClient) ListCommits(ctx context.Context, owner, name string, since time.Time) ([]Commit, error) {
	var all []Commit
	url := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=100&since=%s",
		c.baseURL, owner, name, since.UTC().Format(time.RFC3339))

	for url != "" {
		var page []Commit
		next, err := c.get(ctx, url, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		url = next
	}

	return all, nil
}

func (c *RESTClient) ListPullRequests(ctx context.Context, owner, name string) ([]PullRequest, error) {
	var all []PullRequest
	url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=all&per_page=100", c.baseURL, owner, name)

	for url != "" {
		var page []PullRequest
		next, err := c.get(ctx, url, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		url = next
	}

	for i := range all {
		first, err := c.firstReviewAt(ctx, owner, name, all[i].Number)
		if err != nil {
			// Review history is best-effort; the PR itself is still usable.
			continue
		}
		all[i].FirstReviewAt = first
	}

	return all, nil
}

func (c *RESTClient) firstReviewAt(ctx context.Context, owner, name string, number int) (*time.Time, error) {
	var reviews []review
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews?per_page=1", c.baseURL, owner, name, number)
	if _, err := c.get(ctx, url, &reviews); err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	t := reviews[0].SubmittedAt
	return &t, nil
}

func (c *RESTClient) ListIssues(ctx context.Context, owner, name string) ([]Issue, error) {
	var all []Issue
	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=all&per_page=100", c.baseURL, owner, name)

	for url != "" {
		var page []Issue
		next, err := c.get(ctx, url, &page)
		if err != nil {
			return nil, err
		}
		for _, is := range page {
			if is.PullRequest != nil {
				continue
			}
			all = append(all, is)
		}
		url = next
	}

	return all, nil
}

// extractNextLink parses the Link header to find the "next" URL.
func extractNextLink(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}

	links := strings.Split(linkHeader, ",")
	for _, link := range links {
		parts := strings.Split(link, ";")
		if len(parts) >= 2 && strings.TrimSpace(parts[1]) == `rel="next"` {
			u := strings.TrimSpace(parts[0])
			return strings.Trim(u, "<>")
		}
	}

	return ""
}
