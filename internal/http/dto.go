package httpapi

import "time"

type UserDTO struct {
	UserID   string `json:"user_id"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	TeamName string `json:"team_name"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

type SessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type SettingsDTO struct {
	WorkdayStartHour  int    `json:"workday_start_hour"`
	WorkdayEndHour    int    `json:"workday_end_hour"`
	LateNightStart    int    `json:"late_night_start"`
	NotificationsOn   bool   `json:"notifications_on"`
	Theme             string `json:"theme"`
	WeeklyReportEmail bool   `json:"weekly_report_email"`
}

type DailyActivityDTO struct {
	Date         string `json:"date"`
	Commits      int    `json:"commits"`
	PRsOpened    int    `json:"prs_opened"`
	PRsMerged    int    `json:"prs_merged"`
	IssuesClosed int    `json:"issues_closed"`
}

type ProductivityDTO struct {
	UserID            string             `json:"user_id"`
	Login             string             `json:"login"`
	WindowStart       time.Time          `json:"window_start"`
	WindowEnd         time.Time          `json:"window_end"`
	Days              []DailyActivityDTO `json:"days"`
	TotalCommits      int                `json:"total_commits"`
	TotalPRs          int                `json:"total_prs"`
	MergedPRs         int                `json:"merged_prs"`
	ClosedIssues      int                `json:"closed_issues"`
	AvgDailyCommits   float64            `json:"avg_daily_commits"`
	LateNightFraction float64            `json:"late_night_fraction"`
	WeekendFraction   float64            `json:"weekend_fraction"`
}

type BurnoutDTO struct {
	UserID            string    `json:"user_id"`
	WindowStart       time.Time `json:"window_start"`
	WindowEnd         time.Time `json:"window_end"`
	TotalCommits      int       `json:"total_commits"`
	LateNightFraction float64   `json:"late_night_fraction"`
	WeekendFraction   float64   `json:"weekend_fraction"`
	AvgDailyCommits   float64   `json:"avg_daily_commits"`
	ReviewLatencyH    float64   `json:"review_latency_hours"`
	RiskScore         float64   `json:"risk_score"`
	RiskLevel         string    `json:"risk_level"`
}

type TeamReportDTO struct {
	TeamName           string    `json:"team_name"`
	WindowStart        time.Time `json:"window_start"`
	WindowEnd          time.Time `json:"window_end"`
	MemberCount        int       `json:"member_count"`
	CommitCount        int       `json:"commit_count"`
	PRCount            int       `json:"pr_count"`
	MergedPRCount      int       `json:"merged_pr_count"`
	IssueCount         int       `json:"issue_count"`
	AvgReviewLatencyH  float64   `json:"avg_review_latency_hours"`
	CollaborationScore float64   `json:"collaboration_score"`
}

type RetrospectiveDTO struct {
	ID              uint      `json:"id"`
	TeamName        string    `json:"team_name"`
	WindowStart     time.Time `json:"window_start"`
	WindowEnd       time.Time `json:"window_end"`
	Positives       string    `json:"positives"`
	Improvements    string    `json:"improvements"`
	ActionItems     string    `json:"action_items"`
	TeamHealthScore float64   `json:"team_health_score"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type InsightDTO struct {
	UserID      string    `json:"user_id"`
	WindowDays  int       `json:"window_days"`
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

type RepositoryDTO struct {
	ID           uint       `json:"id"`
	Owner        string     `json:"owner"`
	Name         string     `json:"name"`
	FullName     string     `json:"full_name"`
	URL          string     `json:"url"`
	Private      bool       `json:"private"`
	Stars        int        `json:"stars"`
	Forks        int        `json:"forks"`
	OpenIssues   int        `json:"open_issues"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

type SyncResultDTO struct {
	Repository   RepositoryDTO `json:"repository"`
	Commits      int           `json:"commits"`
	PullRequests int           `json:"pull_requests"`
	Issues       int           `json:"issues"`
}

type AuditEntryDTO struct {
	Action      string    `json:"action"`
	Resource    string    `json:"resource"`
	ResourceKey string    `json:"resource_key"`
	CreatedAt   time.Time `json:"created_at"`
}
