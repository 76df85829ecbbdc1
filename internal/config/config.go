package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Env    string
	Port   string
	DB     DB
	GitHub GitHub
	AI     AI
	Auth   AuthConfig
	Crypto CryptoConfig
	Sync   SyncConfig
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type GitHub struct {
	Token   string
	BaseURL string
}

type AI struct {
	APIKey string
	Model  string
	// Timeout bounds a single completion call; MaxFailures and Cooldown
	// drive the circuit breaker around the completion API.
	Timeout     time.Duration
	MaxFailures int
	Cooldown    time.Duration
}

type AuthConfig struct {
	SessionTTL time.Duration
}

type CryptoConfig struct {
	// Key is the AES-256 key for sensitive-field encryption, 32 bytes.
	Key string
}

type SyncConfig struct {
	Interval time.Duration
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Env:  getEnv("ENV", "development", log),
		Port: getEnv("APP_PORT", "8080", log),
		DB: DB{
			Host:     getEnv("DB_HOST", "localhost", log),
			Port:     getEnv("DB_PORT", "5432", log),
			User:     getEnv("DB_USER", "devpulse", log),
			Password: getEnv("DB_PASSWORD", "devpulse", log),
			Name:     getEnv("DB_NAME", "devpulse", log),
			SSLMode:  getEnv("DB_SSLMODE", "disable", log),
		},
		GitHub: GitHub{
			Token:   getOptional("GITHUB_TOKEN", log),
			BaseURL: getEnv("GITHUB_API_URL", "https://api.github.com", log),
		},
		AI: AI{
			APIKey:      getOptional("OPENAI_API_KEY", log),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini", log),
			Timeout:     getDuration("AI_TIMEOUT", 15*time.Second, log),
			MaxFailures: getInt("AI_BREAKER_MAX_FAILURES", 3, log),
			Cooldown:    getDuration("AI_BREAKER_COOLDOWN", 30*time.Second, log),
		},
		Auth: AuthConfig{
			SessionTTL: getDuration("SESSION_TTL", 24*time.Hour, log),
		},
		Crypto: CryptoConfig{
			Key: getEnv("ENCRYPTION_KEY", "devpulse-dev-key-32-bytes-long!!", log),
		},
		Sync: SyncConfig{
			Interval: getDuration("SYNC_INTERVAL", 30*time.Minute, log),
		},
	}
}

func getEnv(key, defaultVal string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	if defaultVal == "" {
		log.Panic("required environment variable not set", zap.String("key", key))
	}

	log.Warn("environment variable not set, using default",
		zap.String("key", key),
		zap.String("default", defaultVal),
	)
	return defaultVal
}

// getOptional reads keys whose absence only disables an integration (live
// GitHub sync, live AI insights); mock mode works without them.
func getOptional(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Warn("environment variable not set, dependent integration disabled",
		zap.String("key", key),
	)
	return ""
}

func getDuration(key string, defaultVal time.Duration, log *zap.Logger) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Warn("invalid duration in environment, using default",
			zap.String("key", key),
			zap.String("value", val),
			zap.Duration("default", defaultVal),
		)
		return defaultVal
	}
	return d
}

func getInt(key string, defaultVal int, log *zap.Logger) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Warn("invalid integer in environment, using default",
			zap.String("key", key),
			zap.String("value", val),
			zap.Int("default", defaultVal),
		)
		return defaultVal
	}
	return n
}
