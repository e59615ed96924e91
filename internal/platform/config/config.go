// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validation errors.
var (
	ErrInvalidTimeout = errors.New("llm timeout must be positive")
	ErrInvalidBackoff = errors.New("llm backoff must be positive")
	ErrInvalidRetries = errors.New("llm retries must not be negative")
	ErrInvalidLimit   = errors.New("cardinality limits must be positive")
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`

	// Hosted provider (used when no direct endpoint is configured).
	LLMAPIKey string `env:"LLM_API_KEY"`
	LLMModel  string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Directly configured OpenAI-compatible endpoint. All three must be
	// set for the direct variant to be selected.
	DirectBaseURL string `env:"DIRECT_BASE_URL"`
	DirectAPIKey  string `env:"DIRECT_API_KEY"`
	DirectModel   string `env:"DIRECT_MODEL"`

	// Retry policy. Timeout bounds a single attempt; backoff grows
	// linearly with the attempt number.
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMRetries int           `env:"LLM_RETRIES" envDefault:"2"`
	LLMBackoff time.Duration `env:"LLM_BACKOFF" envDefault:"2s"`

	// Per-task cardinality limits.
	MaxTopics     int `env:"MAX_TOPICS" envDefault:"5"`
	MaxUserTitles int `env:"MAX_USER_TITLES" envDefault:"8"`
	MaxQuotes     int `env:"MAX_QUOTES" envDefault:"5"`

	// Quality-filter thresholds.
	QuoteMinLength  int `env:"QUOTE_MIN_LENGTH" envDefault:"10"`
	QuoteMaxLength  int `env:"QUOTE_MAX_LENGTH" envDefault:"200"`
	MinUserMessages int `env:"MIN_USER_MESSAGES" envDefault:"5"`

	RateLimitRPS int `env:"RATE_LIMIT_RPS" envDefault:"1"`
	MetricsPort  int `env:"METRICS_PORT" envDefault:"0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.LLMTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.LLMBackoff <= 0 {
		return ErrInvalidBackoff
	}

	if c.LLMRetries < 0 {
		return ErrInvalidRetries
	}

	if c.MaxTopics <= 0 || c.MaxUserTitles <= 0 || c.MaxQuotes <= 0 {
		return ErrInvalidLimit
	}

	return nil
}

// DirectConfigured reports whether the directly configured endpoint is
// complete enough to be selected instead of the hosted provider.
func (c *Config) DirectConfigured() bool {
	return c.DirectBaseURL != "" && c.DirectAPIKey != "" && c.DirectModel != ""
}
