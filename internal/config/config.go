package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	CacheModeNone   = "none"
	CacheModeLocal  = "local"
	CacheModeRedis  = "redis"
	CacheModeTiered = "tiered"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
	StatsRateLimitAllowedPerMin int `toml:"stats_rate_limit_allowed_per_min"`

	// strength stats
	LoadIncrement float64  `toml:"load_increment"`
	CacheMode     string   `toml:"cache_mode"`
	CacheSizeMB   int      `toml:"cache_size_mb"`
	CacheTTL      Duration `toml:"cache_ttl"`
}

// Duration lets TOML values like "10m" decode into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
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
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and the result validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.StatsRateLimitAllowedPerMin <= 0 {
		c.StatsRateLimitAllowedPerMin = 120
	}
	if c.CacheMode == "" {
		c.CacheMode = CacheModeNone
	}
	if c.CacheSizeMB <= 0 {
		c.CacheSizeMB = 16
	}
	if c.CacheTTL.Duration <= 0 {
		c.CacheTTL.Duration = 10 * time.Minute
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.LoadIncrement < 0 {
		return errors.New("load_increment must not be negative")
	}
	switch c.CacheMode {
	case CacheModeNone, CacheModeLocal, CacheModeRedis, CacheModeTiered:
	default:
		return fmt.Errorf("unknown cache_mode: %s", c.CacheMode)
	}
	return nil
}
