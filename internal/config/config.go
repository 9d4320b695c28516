// Package config loads runtime settings from an optional YAML file and
// HACKRADAR_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Feed names one RSS/Atom feed to poll for announcements.
type Feed struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// Config holds every tunable the pipeline reads.
type Config struct {
	// DBPath is the sqlite database location. "~/" expands to $HOME.
	DBPath string `mapstructure:"db_path"`

	// Sources lists the scrapers to run. Empty means all of them.
	Sources []string `mapstructure:"sources"`

	// RegionKeywords override the built-in locality list used to tag
	// nearby offline events. Empty keeps the defaults.
	RegionKeywords []string `mapstructure:"region_keywords"`

	// Feeds are extra RSS/Atom feeds polled alongside the scrapers.
	Feeds []Feed `mapstructure:"feeds"`

	// SkipSearch disables the web-search fallback for listings that
	// come back without a registration deadline.
	SkipSearch bool `mapstructure:"skip_search"`

	// BatchSize bounds how many rows go into one upsert transaction.
	BatchSize int `mapstructure:"batch_size"`

	// DetailLimit caps how many detail pages the listing crawlers fetch.
	DetailLimit int `mapstructure:"detail_limit"`

	// HTTPTimeoutSeconds bounds each scraper HTTP request. Zero keeps the
	// built-in default.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds"`
}

// Load reads configuration from cfgFile (optional), the working directory,
// and the environment. Missing config files are fine; malformed ones are not.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", "~/.local/share/hackradar/hackradar.db")
	v.SetDefault("sources", []string{})
	v.SetDefault("region_keywords", []string{})
	v.SetDefault("feeds", []Feed{})
	v.SetDefault("skip_search", false)
	v.SetDefault("batch_size", 200)
	v.SetDefault("detail_limit", 30)
	v.SetDefault("http_timeout_seconds", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("hackradar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hackradar")
	}

	v.SetEnvPrefix("HACKRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch_size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.DetailLimit < 0 {
		return nil, fmt.Errorf("detail_limit must not be negative, got %d", cfg.DetailLimit)
	}
	if cfg.HTTPTimeoutSeconds < 0 {
		return nil, fmt.Errorf("http_timeout_seconds must not be negative, got %d", cfg.HTTPTimeoutSeconds)
	}
	return &cfg, nil
}

// SourceEnabled reports whether name is in the configured source list.
// An empty list enables everything.
func (c *Config) SourceEnabled(name string) bool {
	if len(c.Sources) == 0 {
		return true
	}
	for _, s := range c.Sources {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}
