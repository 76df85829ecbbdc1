package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devpulse/internal/ai"
	"devpulse/internal/config"
	"devpulse/internal/crypto"
	"devpulse/internal/database"
	"devpulse/internal/github"
	httpapi "devpulse/internal/http"
	"devpulse/internal/logger"
	"devpulse/internal/repository"
	"devpulse/internal/router"
	"devpulse/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	repo := repository.New(db)

	cipher, err := crypto.New([]byte(cfg.Crypto.Key))
	if err != nil {
		log.Fatal("invalid encryption key", zap.Error(err))
	}

	svcs := service.New(service.Deps{
		Repo:       repo,
		Log:        log,
		Cipher:     cipher,
		LiveGitHub: github.NewRESTClient(cfg.GitHub.BaseURL, cfg.GitHub.Token),
		LiveAI:     ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout, log),
		MockAI:     ai.MockClient{},
		Breaker:    ai.NewBreaker(cfg.AI.MaxFailures, cfg.AI.Cooldown),
		SessionTTL: cfg.Auth.SessionTTL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svcs.Mode.EnsureDefaults(ctx); err != nil {
		log.Error("failed to ensure mock data set", zap.Error(err))
	}

	// Background re-sync of indexed repositories.
	go svcs.Ingest.RunScheduler(ctx, cfg.Sync.Interval)

	// Periodic cleanup of expired sessions.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := repo.Sessions.DeleteExpired(ctx, time.Now().UTC())
				if err != nil {
					log.Error("session cleanup failed", zap.Error(err))
				} else if n > 0 {
					log.Info("expired sessions removed", zap.Int64("count", n))
				}
			}
		}
	}()

	h := httpapi.New(svcs, log)
	r := router.Router(h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
