package config

import (
	"fmt"
	"strings"

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
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// calculator
	EvaluateRateLimitAllowedPerMin int     `toml:"evaluate_rate_limit_allowed_per_min"`
	PresetCacheSizeMB              int     `toml:"preset_cache_size_mb"`
	PresetCacheTTLSeconds          int     `toml:"preset_cache_ttl_seconds"`
	DefaultWeightUnit              string  `toml:"default_weight_unit"`
	DefaultDistanceUnit            string  `toml:"default_distance_unit"`
	MultiplierIncrement            float64 `toml:"multiplier_increment"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the table for env,
// with unset fields filled from the defaults.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.EvaluateRateLimitAllowedPerMin <= 0 {
		c.EvaluateRateLimitAllowedPerMin = 120
	}
	if c.PresetCacheSizeMB <= 0 {
		c.PresetCacheSizeMB = 8
	}
	if c.PresetCacheTTLSeconds <= 0 {
		c.PresetCacheTTLSeconds = 300
	}
	if c.DefaultWeightUnit == "" {
		c.DefaultWeightUnit = "kg"
	}
	if c.DefaultDistanceUnit == "" {
		c.DefaultDistanceUnit = "km"
	}
	if c.MultiplierIncrement <= 0 {
		c.MultiplierIncrement = 1
	}
}
