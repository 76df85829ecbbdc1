package service

import (
	"time"

	"devpulse/internal/ai"
	"devpulse/internal/crypto"
	"devpulse/internal/github"
	"devpulse/internal/repository"

	"go.uber.org/zap"
)

type Services struct {
	Auth      AuthService
	Users     UserService
	Analytics AnalyticsService
	Teams     TeamService
	Ingest    IngestService
	Insights  InsightsService
	Privacy   PrivacyService
	Mode      ModeService
}

// Deps carries everything the service layer is wired with.
type Deps struct {
	Repo       *repository.Repository
	Log        *zap.Logger
	Cipher     *crypto.Cipher
	LiveGitHub github.Client
	LiveAI     ai.Client
	MockAI     ai.Client
	Breaker    *ai.Breaker
	SessionTTL time.Duration
}

func New(d Deps) *Services {
	mode := NewModeService(d.Repo, d.LiveGitHub, d.LiveAI, d.MockAI, d.Log)
	analytics := NewAnalyticsService(d.Repo, d.Log)
	teams := NewTeamService(d.Repo, d.Log)

	return &Services{
		Auth:      NewAuthService(d.Repo, d.SessionTTL, d.Log),
		Users:     NewUserService(d.Repo, d.Log),
		Analytics: analytics,
		Teams:     teams,
		Ingest:    NewIngestService(d.Repo, mode, d.Log),
		Insights:  NewInsightsService(analytics, mode, d.Breaker, d.Log),
		Privacy:   NewPrivacyService(d.Repo, d.Cipher, d.Log),
		Mode:      mode,
	}
}
