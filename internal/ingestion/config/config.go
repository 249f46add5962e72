package config

import (
	"time"

	"golang-market-sentiment/pkg/config"
)

// Feed is one RSS source.
type Feed struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// Ingestion holds the feed polling settings.
type Ingestion struct {
	Cron        string        `mapstructure:"cron"`
	Feeds       []Feed        `mapstructure:"feeds"`
	MaxItems    int           `mapstructure:"max_items"`
	MaxAge      time.Duration `mapstructure:"max_age"`
	Concurrency int           `mapstructure:"concurrency"`
	DedupeTTL   time.Duration `mapstructure:"dedupe_ttl"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RunOnStart  bool          `mapstructure:"run_on_start"`
	Digest      bool          `mapstructure:"digest"`
}

// Config holds the full configuration for the ingestion service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Redis     config.Redis    `mapstructure:"redis"`
	Telegram  config.Telegram `mapstructure:"telegram"`
	Ingestion Ingestion       `mapstructure:"ingestion"`
}

// Default returns the configuration used for keys absent from the file.
func Default() Config {
	return Config{
		App:    config.App{Name: "ingestion-service", Env: "development"},
		Logger: config.Logger{Level: "info", Encoding: "json"},
		Redis:  config.Redis{StreamMaxLen: 10000},
		Ingestion: Ingestion{
			Cron:        "*/15 * * * *",
			MaxItems:    10,
			MaxAge:      24 * time.Hour,
			Concurrency: 3,
			DedupeTTL:   48 * time.Hour,
			Timeout:     30 * time.Second,
			RunOnStart:  true,
		},
	}
}

// DefaultFeeds are the Indian market feeds polled when the file lists none.
func DefaultFeeds() []Feed {
	return []Feed{
		{Name: "economic-times-markets", URL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms"},
		{Name: "moneycontrol-markets", URL: "https://www.moneycontrol.com/rss/marketreports.xml"},
		{Name: "livemint-markets", URL: "https://www.livemint.com/rss/markets"},
	}
}

// Load loads the ingestion configuration from the given path over Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Ingestion.Feeds) == 0 {
		cfg.Ingestion.Feeds = DefaultFeeds()
	}
	return &cfg, nil
}
