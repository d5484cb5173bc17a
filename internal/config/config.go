// Package config reads the server configuration from the environment (with an
// optional .env file) and the scoring rules from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled is false when no host is configured; the server then runs
// without the cache and the rate limiter.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// AdminConfig names a global admin created at startup when no user with
// that email exists yet. Empty Email disables it.
type AdminConfig struct {
	Email    string
	Name     string
	Password string
}

type Config struct {
	AppEnv      string
	Port        string
	Storage     string
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	Admin       AdminConfig
	ScoringFile string
	Scoring     domain.ScoreOptions
	// SnapshotInterval is how often every department is re-snapshotted in
	// addition to the on-write refresh. Zero disables the sweep.
	SnapshotInterval time.Duration
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads .env (if present) and the environment. The scoring file is
// optional; without it the default thresholds apply.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "production"),
		Port:    getEnv("PORT", "8080"),
		Storage: strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnv("JWT_ISSUER", "bpr-dashboard"),
		},
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Admin: AdminConfig{
			Email:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
			Name:     getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
			Password: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		},
		ScoringFile: os.Getenv("SCORING_FILE"),
		Scoring:     domain.DefaultScoreOptions(),
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWT.TTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SnapshotInterval, err = getDuration("SNAPSHOT_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	if cfg.ScoringFile != "" {
		if cfg.Scoring, err = LoadScoring(cfg.ScoringFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("config: STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Storage == StoragePostgres && (c.DB.User == "" || c.DB.Name == "") {
		return errors.New("config: DB_USER and DB_NAME are required for postgres storage")
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		return errors.New("config: BOOTSTRAP_ADMIN_PASSWORD is required with BOOTSTRAP_ADMIN_EMAIL")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("config: RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	return nil
}

type scoringFile struct {
	Thresholds *struct {
		OnTrack *float64 `yaml:"on_track"`
		AtRisk  *float64 `yaml:"at_risk"`
	} `yaml:"thresholds"`
	Weighting domain.Weighting `yaml:"weighting"`
}

// LoadScoring reads status thresholds and the weighting mode from a YAML
// file such as:
//
//	thresholds:
//	  on_track: 70
//	  at_risk: 50
//	weighting: equal
//
// Missing keys keep their defaults.
func LoadScoring(path string) (domain.ScoreOptions, error) {
	opts := domain.DefaultScoreOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read scoring file: %w", err)
	}

	var raw scoringFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return opts, fmt.Errorf("parse scoring file: %w", err)
	}

	if raw.Thresholds != nil {
		if raw.Thresholds.OnTrack != nil {
			opts.Thresholds.OnTrack = *raw.Thresholds.OnTrack
		}
		if raw.Thresholds.AtRisk != nil {
			opts.Thresholds.AtRisk = *raw.Thresholds.AtRisk
		}
	}
	if !opts.Thresholds.Valid() {
		return opts, fmt.Errorf("scoring file: invalid thresholds on_track=%v at_risk=%v", opts.Thresholds.OnTrack, opts.Thresholds.AtRisk)
	}

	if raw.Weighting != "" {
		if !raw.Weighting.Valid() {
			return opts, fmt.Errorf("scoring file: unknown weighting %q", raw.Weighting)
		}
		opts.Weighting = raw.Weighting
	}
	return opts, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
