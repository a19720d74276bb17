package config

import (
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/config"
)

// Identity holds the settings for the external identity provider.
type Identity struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	RequestTimeout string  `mapstructure:"request_timeout"`
	CacheTTL       string  `mapstructure:"cache_ttl"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Console holds console-specific settings.
type Console struct {
	StatsCacheTTL      string `mapstructure:"stats_cache_ttl"`
	PurgeSchedule      string `mapstructure:"purge_schedule"`
	PurgeRetentionDays int    `mapstructure:"purge_retention_days"`
}

// Config holds the full configuration for the console service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Identity Identity        `mapstructure:"identity"`
	Console  Console         `mapstructure:"console"`
}

// Load loads the console configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
