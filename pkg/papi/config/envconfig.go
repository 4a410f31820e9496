package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/quatton/portfolio/pkg/db"
	"github.com/quatton/portfolio/pkg/kv"
	"github.com/quatton/portfolio/pkg/papi/utils"
	"github.com/quatton/portfolio/pkg/plog"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type EnvConfig struct {
	Port                string        `envconfig:"PORT" default:"3000"`
	BaseURL             string        `envconfig:"BASE_URL" default:"http://localhost:3000"`
	AuthSecret          string        `envconfig:"AUTH_SECRET" required:"true"`
	Environment         string        `envconfig:"ENVIRONMENT" default:"development"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	StoreDriver         string        `envconfig:"STORE_DRIVER" default:"postgres"`
	AutoMigrate         bool          `envconfig:"AUTO_MIGRATE" default:"false"`
	DBHost              string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort              int           `envconfig:"DB_PORT" default:"5432"`
	DBUser              string        `envconfig:"DB_USER" default:"portfolio"`
	DBPassword          string        `envconfig:"DB_PASSWORD" default:"password"`
	DBName              string        `envconfig:"DB_NAME" default:"portfolio"`
	DBSSLMode           string        `envconfig:"DB_SSLMODE" default:"disable"`
	ValkeyAddr          string        `envconfig:"VALKEY_ADDR"`
	ValkeyPassword      string        `envconfig:"VALKEY_PASSWORD"`
	ValkeyDB            int           `envconfig:"VALKEY_DB" default:"0"`
	LeaderboardCacheTTL time.Duration `envconfig:"LEADERBOARD_CACHE_TTL" default:"15s"`
}

// Load reads the environment (and .env in development) without validating.
func Load(logger *plog.Logger) (*EnvConfig, error) {
	if utils.IsDev() {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found")
		} else {
			logger.Info("loaded .env file")
		}
	}

	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return &cfg, nil
}

func ValidateEnv(logger *plog.Logger) (*EnvConfig, error) {
	cfg, err := Load(logger)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *EnvConfig) Validate() error {
	var errors []string

	if len(c.AuthSecret) < 32 {
		errors = append(errors, "  AUTH_SECRET must be at least 32 characters")
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		errors = append(errors, "  BASE_URL must be a valid URL")
	}

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		errors = append(errors, fmt.Sprintf("  STORE_DRIVER must be %q or %q, got %q",
			StoreDriverPostgres, StoreDriverMemory, c.StoreDriver))
	}

	if c.StoreDriver == StoreDriverMemory && utils.IsProd() {
		errors = append(errors, "  STORE_DRIVER=memory is not allowed in production")
	}

	if c.SessionTTL <= 0 {
		errors = append(errors, "  SESSION_TTL must be positive")
	}

	if c.LeaderboardCacheTTL < 0 {
		errors = append(errors, "  LEADERBOARD_CACHE_TTL must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("environment validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}

func (c *EnvConfig) DB() db.Config {
	return db.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Database: c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

func (c *EnvConfig) Valkey() kv.ValkeyConfig {
	return kv.ValkeyConfig{
		Addr:     c.ValkeyAddr,
		Password: c.ValkeyPassword,
		DB:       c.ValkeyDB,
	}
}

func MaskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func (c *EnvConfig) Print(fmtr func(string, ...interface{})) {
	fmtr("Configuration:\n")
	fmtr("  Environment: %s\n", c.Environment)
	fmtr("  Port: %s\n", c.Port)
	fmtr("  Base URL: %s\n", c.BaseURL)
	fmtr("  Auth Secret: %s\n", MaskSecret(c.AuthSecret))
	fmtr("  Session TTL: %s\n", c.SessionTTL)
	fmtr("  Store: %s\n", c.StoreDriver)
	if c.StoreDriver == StoreDriverPostgres {
		fmtr("  Database: %s@%s:%d/%s (sslmode=%s)\n", c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
	}

	if c.ValkeyAddr != "" {
		fmtr("  Leaderboard cache: valkey %s/%d (ttl %s)\n", c.ValkeyAddr, c.ValkeyDB, c.LeaderboardCacheTTL)
	} else {
		fmtr("  Leaderboard cache: in-process (ttl %s)\n", c.LeaderboardCacheTTL)
	}
}
