package config

import (
	"errors"
	"os"
	"time"
)

const devSecretPlaceholder = "dev-secret-do-not-use-in-prod"

// Config carries all environment-driven settings. Loaded once in main and
// passed down explicitly; nothing else in the app reads the environment.
type Config struct {
	Port        string
	DatabaseURL string
	Env         string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	Issuer           string

	AbstractAPIKey string
}

// Load reads configuration from the environment. Signing secrets are
// required outside development: an unset secret is a startup error, never a
// silent fallback to a known default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Env:              getenv("APP_ENV", "production"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   getenvDuration("JWT_EXPIRES_IN", time.Hour),
		RefreshTokenTTL:  getenvDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		Issuer:           getenv("JWT_ISSUER", "lessonhub-api"),
		AbstractAPIKey:   os.Getenv("ABSTRACT_EMAIL_API_KEY"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			return nil, errors.New("JWT_SECRET is required")
		}
		cfg.JWTSecret = devSecretPlaceholder
	}
	if cfg.JWTRefreshSecret == "" {
		if cfg.Env != "development" {
			return nil, errors.New("JWT_REFRESH_SECRET is required")
		}
		cfg.JWTRefreshSecret = devSecretPlaceholder + "-refresh"
	}
	if cfg.JWTSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
