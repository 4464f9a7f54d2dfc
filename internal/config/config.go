package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	LogMaxBackups int    `toml:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	MigrateOnStart   bool   `toml:"migrate_on_start"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// auth
	SessionTTL                  time.Duration `toml:"session_ttl"`
	SessionsCleanupInterval     time.Duration `toml:"sessions_cleanup_interval"`
	LoginRateLimitAllowedPerMin int           `toml:"login_rate_limit_allowed_per_min"`
	// habits
	Timezone          string        `toml:"timezone"`
	HabitsCacheSizeMB int           `toml:"habits_cache_size_mb"`
	HabitsCacheTTL    time.Duration `toml:"habits_cache_ttl"`
	// ai
	GeminiModel              string `toml:"gemini_model"`
	GeminiEndpoint           string `toml:"gemini_endpoint"`
	AIRateLimitAllowedPerMin int    `toml:"ai_rate_limit_allowed_per_min"`
	// misc
	QuotesCsvPath      string   `toml:"quotes_csv_path"`
	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 24 * 7 * time.Hour
	}
	if c.SessionsCleanupInterval == 0 {
		c.SessionsCleanupInterval = 8 * time.Hour
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.AIRateLimitAllowedPerMin == 0 {
		c.AIRateLimitAllowedPerMin = 10
	}
	if c.HabitsCacheSizeMB == 0 {
		c.HabitsCacheSizeMB = 32
	}
	if c.HabitsCacheTTL == 0 {
		c.HabitsCacheTTL = 30 * time.Second
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 {
		errs = append(errs, errors.New("port must be set"))
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		errs = append(errs, errors.New("postgres host and db name must be set"))
	}
	if c.RedisHost == "" {
		errs = append(errs, errors.New("redis host must be set"))
	}
	if c.QuotesCsvPath == "" {
		errs = append(errs, errors.New("quotes csv path must be set"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	return errors.Join(errs...)
}
