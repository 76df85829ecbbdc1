package models

import "time"

type User struct {
	ID           string    `gorm:"column:user_id;primaryKey"`
	Login        string    `gorm:"column:login;uniqueIndex;not null"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	AvatarURL    string    `gorm:"column:avatar_url"`
	Timezone     string    `gorm:"column:timezone;default:'UTC'"`
	TeamName     string    `gorm:"column:team_name;index"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Settings *UserSettings `gorm:"foreignKey:UserID;references:ID"`
	Sessions []Session     `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

type UserSettings struct {
	UserID            string    `gorm:"column:user_id;primaryKey"`
	WorkdayStartHour  int       `gorm:"column:workday_start_hour;not null;default:9"`
	WorkdayEndHour    int       `gorm:"column:workday_end_hour;not null;default:18"`
	LateNightStart    int       `gorm:"column:late_night_start;not null;default:22"`
	NotificationsOn   bool      `gorm:"column:notifications_on;not null;default:true"`
	Theme             string    `gorm:"column:theme;default:'system'"`
	WeeklyReportEmail bool      `gorm:"column:weekly_report_email;not null;default:false"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

type Session struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Session) TableName() string {
	return "sessions"
}

type Repository struct {
	ID           uint       `gorm:"column:repository_id;primaryKey"`
	ProviderID   int64      `gorm:"column:provider_id;uniqueIndex"`
	Owner        string     `gorm:"column:owner;not null;index"`
	Name         string     `gorm:"column:name;not null"`
	FullName     string     `gorm:"column:full_name;uniqueIndex;not null"`
	URL          string     `gorm:"column:url"`
	Private      bool       `gorm:"column:private;not null;default:false"`
	Stars        int        `gorm:"column:stars"`
	Forks        int        `gorm:"column:forks"`
	OpenIssues   int        `gorm:"column:open_issues"`
	LastSyncedAt *time.Time `gorm:"column:last_synced_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Commits      []Commit      `gorm:"foreignKey:RepositoryID;references:ID"`
	PullRequests []PullRequest `gorm:"foreignKey:RepositoryID;references:ID"`
	Issues       []Issue       `gorm:"foreignKey:RepositoryID;references:ID"`
}

func (Repository) TableName() string {
	return "repositories"
}

type Commit struct {
	ID           uint      `gorm:"column:commit_id;primaryKey"`
	SHA          string    `gorm:"column:sha;uniqueIndex;not null"`
	RepositoryID uint      `gorm:"column:repository_id;not null;index"`
	AuthorLogin  string    `gorm:"column:author_login;index"`
	AuthorName   string    `gorm:"column:author_name"`
	Message      string    `gorm:"column:message"`
	Additions    int       `gorm:"column:additions"`
	Deletions    int       `gorm:"column:deletions"`
	AuthoredAt   time.Time `gorm:"column:authored_at;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`

	Repository *Repository `gorm:"foreignKey:RepositoryID;references:ID"`
}

func (Commit) TableName() string {
	return "commits"
}

type PullRequestState string

const (
	PRStateOpen   PullRequestState = "OPEN"
	PRStateMerged PullRequestState = "MERGED"
	PRStateClosed PullRequestState = "CLOSED"
)

type PullRequest struct {
	ID             uint             `gorm:"column:pull_request_id;primaryKey"`
	ProviderID     int64            `gorm:"column:provider_id;uniqueIndex"`
	RepositoryID   uint             `gorm:"column:repository_id;not null;index"`
	Number         int              `gorm:"column:number;not null"`
	AuthorLogin    string           `gorm:"column:author_login;index"`
	Title          string           `gorm:"column:title"`
	State          PullRequestState `gorm:"column:state;type:text;not null;default:'OPEN'"`
	CreatedAt      time.Time        `gorm:"column:created_at;not null;index"`
	MergedAt       *time.Time       `gorm:"column:merged_at"`
	ClosedAt       *time.Time       `gorm:"column:closed_at"`
	FirstReviewAt  *time.Time       `gorm:"column:first_review_at"`
	Additions      int              `gorm:"column:additions"`
	Deletions      int              `gorm:"column:deletions"`
	ReviewComments int              `gorm:"column:review_comments"`

	Repository *Repository `gorm:"foreignKey:RepositoryID;references:ID"`
}

func (PullRequest) TableName() string {
	return "pull_requests"
}

type IssueState string

const (
	IssueStateOpen   IssueState = "OPEN"
	IssueStateClosed IssueState = "CLOSED"
)

type Issue struct {
	ID           uint       `gorm:"column:issue_id;primaryKey"`
	ProviderID   int64      `gorm:"column:provider_id;uniqueIndex"`
	RepositoryID uint       `gorm:"column:repository_id;not null;index"`
	Number       int        `gorm:"column:number;not null"`
	AuthorLogin  string     `gorm:"column:author_login;index"`
	Title        string     `gorm:"column:title"`
	State        IssueState `gorm:"column:state;type:text;not null;default:'OPEN'"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null"`
	ClosedAt     *time.Time `gorm:"column:closed_at"`

	Repository *Repository `gorm:"foreignKey:RepositoryID;references:ID"`
}

func (Issue) TableName() string {
	return "issues"
}

type TeamMetric struct {
	ID                 uint      `gorm:"column:team_metric_id;primaryKey"`
	TeamName           string    `gorm:"column:team_name;not null;uniqueIndex:idx_team_window"`
	WindowStart        time.Time `gorm:"column:window_start;not null;uniqueIndex:idx_team_window"`
	WindowEnd          time.Time `gorm:"column:window_end;not null"`
	CommitCount        int       `gorm:"column:commit_count"`
	PRCount            int       `gorm:"column:pr_count"`
	MergedPRCount      int       `gorm:"column:merged_pr_count"`
	IssueCount         int       `gorm:"column:issue_count"`
	AvgReviewLatencyH  float64   `gorm:"column:avg_review_latency_hours"`
	CollaborationScore float64   `gorm:"column:collaboration_score"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TeamMetric) TableName() string {
	return "team_metrics"
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

type BurnoutMetric struct {
	ID                uint      `gorm:"column:burnout_metric_id;primaryKey"`
	UserID            string    `gorm:"column:user_id;not null;uniqueIndex:idx_user_window"`
	WindowStart       time.Time `gorm:"column:window_start;not null;uniqueIndex:idx_user_window"`
	WindowEnd         time.Time `gorm:"column:window_end;not null"`
	LateNightFraction float64   `gorm:"column:late_night_fraction"`
	WeekendFraction   float64   `gorm:"column:weekend_fraction"`
	AvgDailyCommits   float64   `gorm:"column:avg_daily_commits"`
	ReviewLatencyH    float64   `gorm:"column:review_latency_hours"`
	RiskScore         float64   `gorm:"column:risk_score"`
	RiskLevel         RiskLevel `gorm:"column:risk_level;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (BurnoutMetric) TableName() string {
	return "burnout_metrics"
}

type Retrospective struct {
	ID              uint      `gorm:"column:retrospective_id;primaryKey"`
	TeamName        string    `gorm:"column:team_name;not null;index"`
	WindowStart     time.Time `gorm:"column:window_start;not null"`
	WindowEnd       time.Time `gorm:"column:window_end;not null"`
	Positives       string    `gorm:"column:positives"`
	Improvements    string    `gorm:"column:improvements"`
	ActionItems     string    `gorm:"column:action_items"`
	TeamHealthScore float64   `gorm:"column:team_health_score"`
	GeneratedAt     time.Time `gorm:"column:generated_at;autoCreateTime"`
}

func (Retrospective) TableName() string {
	return "retrospectives"
}

type SensitiveData struct {
	ID         uint      `gorm:"column:sensitive_data_id;primaryKey"`
	UserID     string    `gorm:"column:user_id;not null;uniqueIndex:idx_user_type_key"`
	DataType   string    `gorm:"column:data_type;not null;uniqueIndex:idx_user_type_key"`
	DataKey    string    `gorm:"column:data_key;not null;uniqueIndex:idx_user_type_key"`
	Ciphertext []byte    `gorm:"column:ciphertext;not null"`
	Nonce      []byte    `gorm:"column:nonce;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (SensitiveData) TableName() string {
	return "sensitive_data"
}

type AuditAction string

const (
	AuditRead   AuditAction = "READ"
	AuditWrite  AuditAction = "WRITE"
	AuditDelete AuditAction = "DELETE"
)

type AuditLog struct {
	ID          uint        `gorm:"column:audit_log_id;primaryKey"`
	ActorID     string      `gorm:"column:actor_id;not null;index"`
	Action      AuditAction `gorm:"column:action;type:text;not null"`
	Resource    string      `gorm:"column:resource;not null"`
	ResourceKey string      `gorm:"column:resource_key"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type Mode string

const (
	ModeLive Mode = "LIVE"
	ModeMock Mode = "MOCK"
)

// AppMode is a singleton row selecting live or mock upstream clients.
type AppMode struct {
	ID        uint      `gorm:"column:app_mode_id;primaryKey"`
	Mode      Mode      `gorm:"column:mode;type:text;not null;default:'LIVE'"`
	UpdatedBy string    `gorm:"column:updated_by"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AppMode) TableName() string {
	return "app_mode"
}

type MockDataSet struct {
	ID        uint      `gorm:"column:mock_data_set_id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Seed      int64     `gorm:"column:seed;not null"`
	RepoCount int       `gorm:"column:repo_count;not null;default:3"`
	UserCount int       `gorm:"column:user_count;not null;default:5"`
	Days      int       `gorm:"column:days;not null;default:30"`
	IsActive  bool      `gorm:"column:is_active;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MockDataSet) TableName() string {
	return "mock_data_sets"
}
