package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv            = "dev"
	defaultHTTPPort          = "8080"
	defaultDatabaseURL       = "petstat.db"
	defaultLogLevel          = "info"
	defaultJWTSecret         = "change-me-jwt-sign-secret"
	defaultRefreshHashSecret = "change-me-refresh-hash-secret"
	defaultGoogleJWKSURL     = "https://www.googleapis.com/oauth2/v3/certs"
	defaultJWKSFetchTimeout  = "30s"
	defaultJWKSSafeClient    = "true"
	defaultJWTAccessTTL      = "15m"
	defaultRefreshTTL        = "48h"
	defaultAuthRatePerMinute = "30"

	minProdSecretLen = 32
)

type Config struct {
	AppEnv             string
	HTTPPort           string
	DatabaseURL        string
	LogLevel           string
	CORSAllowedOrigins []string

	JWTSignSecret          string
	RefreshKeyHashSecret   string
	GoogleClientID         string
	GoogleJWKSURL          string
	JWKSFetchTimeout       time.Duration
	JWKSSafeClient         bool
	JWTAccessTTL           time.Duration
	RefreshTTL             time.Duration
	AuthRateLimitPerMinute int
}

// LoadDotEnv reads .env files if present. Variables already set win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to load env file", slog.String("file", f), slog.String("error", err.Error()))
		}
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPPort = strings.TrimSpace(getEnv("HTTP_PORT", defaultHTTPPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	cfg.JWTSignSecret = strings.TrimSpace(getEnv("JWT_SIGN_SECRET", defaultJWTSecret))
	cfg.RefreshKeyHashSecret = strings.TrimSpace(getEnv("REFRESH_KEY_HASHING_SECRET", defaultRefreshHashSecret))
	cfg.GoogleClientID = strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_ID"))
	cfg.GoogleJWKSURL = strings.TrimSpace(getEnv("GOOGLE_OAUTH_PUBLIC_KEY_URL", defaultGoogleJWKSURL))
	cfg.JWKSSafeClient = parseBoolEnv("JWKS_SAFE_CLIENT", defaultJWKSSafeClient)

	var err error
	cfg.JWKSFetchTimeout, err = parseDurationEnv("JWKS_FETCH_TIMEOUT", defaultJWKSFetchTimeout)
	if err != nil {
		return nil, err
	}

	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	cfg.AuthRateLimitPerMinute, err = parseIntEnv("AUTH_RATE_LIMIT_PER_MINUTE", defaultAuthRatePerMinute)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.JWKSFetchTimeout <= 0 {
		return fmt.Errorf("JWKS_FETCH_TIMEOUT must be > 0")
	}
	if cfg.AuthRateLimitPerMinute <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE must be > 0")
	}
	if cfg.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_OAUTH_CLIENT_ID must be set")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTSignSecret == cfg.RefreshKeyHashSecret {
		return fmt.Errorf("JWT_SIGN_SECRET and REFRESH_KEY_HASHING_SECRET must differ")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSignSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SIGN_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshKeyHashSecret, defaultRefreshHashSecret) {
			return fmt.Errorf("in prod/release REFRESH_KEY_HASHING_SECRET must be set and not default")
		}
		if len(cfg.JWTSignSecret) < minProdSecretLen || len(cfg.RefreshKeyHashSecret) < minProdSecretLen {
			return fmt.Errorf("in prod/release secrets must be at least %d bytes", minProdSecretLen)
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
