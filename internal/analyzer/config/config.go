package config

import (
	"time"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/pkg/config"
)

// Engine holds the analysis policy plus optional replacement data files.
type Engine struct {
	Policy        engine.Policy `mapstructure:"policy"`
	LexiconFile   string        `mapstructure:"lexicon_file"`
	CatalogFile   string        `mapstructure:"catalog_file"`
	MaxTextLength int           `mapstructure:"max_text_length"`
}

// AI selects the model backed estimator: "gemini", "openai" or empty for
// keyword-only scoring.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Gemini holds the configuration of the Gemini text and image estimator.
type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	Model               string        `mapstructure:"model"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	RequestBurst        int           `mapstructure:"request_burst"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// OpenAI holds the configuration of an OpenAI compatible chat completions
// estimator. BaseURL is the full completions endpoint.
type OpenAI struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	Model               string        `mapstructure:"model"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	RequestBurst        int           `mapstructure:"request_burst"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Fetcher holds the article fetcher settings.
type Fetcher struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	MemoTTL      time.Duration `mapstructure:"memo_ttl"`
}

// Cache holds the Redis result cache settings. A zero TTL disables caching.
type Cache struct {
	ResultTTL time.Duration `mapstructure:"result_ttl"`
}

// Consumer holds the settings of the article stream consumer.
type Consumer struct {
	Enabled       bool          `mapstructure:"enabled"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Block         time.Duration `mapstructure:"block"`
	Count         int64         `mapstructure:"count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	MaxIdle       time.Duration `mapstructure:"max_idle"`
	MaxRetry      int64         `mapstructure:"max_retry"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Engine   Engine          `mapstructure:"engine"`
	AI       AI              `mapstructure:"ai"`
	Gemini   Gemini          `mapstructure:"gemini"`
	OpenAI   OpenAI          `mapstructure:"openai"`
	Fetcher  Fetcher         `mapstructure:"fetcher"`
	Telegram config.Telegram `mapstructure:"telegram"`
	Cache    Cache           `mapstructure:"cache"`
	Consumer Consumer        `mapstructure:"consumer"`
}

// Default returns the configuration used for keys absent from the file.
func Default() Config {
	return Config{
		App:    config.App{Name: "analyzer-service", Env: "development"},
		Logger: config.Logger{Level: "info", Encoding: "json"},
		API:    config.API{Port: 8080, ShutdownTimeout: 10 * time.Second},
		Engine: Engine{
			Policy:        engine.DefaultPolicy(),
			MaxTextLength: 100000,
		},
		Gemini: Gemini{
			BaseURL:             "https://generativelanguage.googleapis.com/v1beta/models",
			Model:               "gemini-2.0-flash",
			MaxRequestPerMinute: 15,
			RequestBurst:        2,
			MaxTokenPerMinute:   1000000,
			Timeout:             30 * time.Second,
		},
		OpenAI: OpenAI{
			BaseURL:             "https://api.openai.com/v1/chat/completions",
			Model:               "gpt-4o-mini",
			MaxRequestPerMinute: 60,
			RequestBurst:        2,
			MaxTokenPerMinute:   200000,
			Timeout:             30 * time.Second,
		},
		Fetcher: Fetcher{
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Timeout:      10 * time.Second,
			MaxBodyBytes: 5 << 20,
			MemoTTL:      5 * time.Minute,
		},
		Cache: Cache{ResultTTL: 10 * time.Minute},
		Consumer: Consumer{
			Enabled:       true,
			Timeout:       2 * time.Minute,
			Block:         2 * time.Second,
			Count:         1,
			RetryInterval: time.Minute,
			MaxIdle:       5 * time.Minute,
			MaxRetry:      3,
		},
	}
}

// Load loads the analyzer configuration from the given path over Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
