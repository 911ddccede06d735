package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	Timezone    string `env:"TZ" envDefault:"UTC"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	DBPath         string `env:"DB_PATH" envDefault:"data/doze.db"`
	PostgresDSN    string `env:"POSTGRES_DSN"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"doze"`

	SnowflakeNode int64 `env:"SNOWFLAKE_NODE" envDefault:"1"`

	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"`

	DashboardWindowSize int `env:"DASHBOARD_WINDOW_SIZE" envDefault:"7"`
	SummaryDays         int `env:"SUMMARY_DAYS" envDefault:"7"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(env.Options{})
}

func Parse(options env.Options) (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, options); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.StorageBackend {
	case BackendSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("DB_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return errors.New("POSTGRES_DSN is required for the postgres backend")
		}
	case BackendRedis:
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.SnowflakeNode < 0 || cfg.SnowflakeNode > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE must be between 0 and 1023, got %d", cfg.SnowflakeNode)
	}
	if cfg.DashboardWindowSize < 1 {
		return errors.New("DASHBOARD_WINDOW_SIZE must be positive")
	}
	if cfg.SummaryDays < 1 || cfg.SummaryDays > 366 {
		return errors.New("SUMMARY_DAYS must be between 1 and 366")
	}
	return nil
}

// Location falls back to UTC for unknown zone names.
func (cfg Config) Location() (*time.Location, bool) {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone))
	if err != nil {
		return time.UTC, false
	}
	return location, true
}

func (cfg Config) SQLitePath() string {
	return filepath.Clean(cfg.DBPath)
}

func (cfg Config) IsDevelopment() bool {
	return cfg.Environment == "development"
}
