// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and SQUADFORM_ environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// TeamName and Season label the team page.
	TeamName string `koanf:"team_name"`
	Season   string `koanf:"season"`

	// DefaultTopN is the leaderboard size when no limit is given.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// Narrative generator settings. An empty API key disables generation.
	NarrativeBaseURL         string `koanf:"narrative_base_url"`
	NarrativeModel           string `koanf:"narrative_model"`
	NarrativeAPIKey          string `koanf:"narrative_api_key"`
	NarrativeTimeoutMS       int    `koanf:"narrative_timeout_ms"`
	NarrativeRatePerMinute   int    `koanf:"narrative_rate_per_minute"`
	NarrativeBreakerFailures int    `koanf:"narrative_breaker_failures"`

	// Prometheus naming. Team and season are attached as constant labels.
	MetricsNamespace string    `koanf:"metrics_namespace"`
	MetricsSubsystem string    `koanf:"metrics_subsystem"`
	MetricsBucketsMS []float64 `koanf:"metrics_buckets_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		Addr:                     ":9080",
		TeamName:                 "U10",
		Season:                   "2026",
		DefaultTopN:              5,
		MaxLeaderboardLimit:      50,
		NarrativeBaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		NarrativeModel:           "gemini-2.5-flash",
		NarrativeTimeoutMS:       15_000,
		NarrativeRatePerMinute:   30,
		NarrativeBreakerFailures: 3,
		MetricsNamespace:         "squadform",
		MetricsSubsystem:         "dashboard",
	}
}

// NarrativeTimeout returns NarrativeTimeoutMS as a duration.
func (c *Config) NarrativeTimeout() time.Duration {
	return time.Duration(c.NarrativeTimeoutMS) * time.Millisecond
}

// NarrativeEnabled reports whether an API key is configured.
func (c *Config) NarrativeEnabled() bool {
	return strings.TrimSpace(c.NarrativeAPIKey) != ""
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.DefaultTopN < 1:
		return fmt.Errorf("%w: default_top_n must be positive", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.DefaultTopN > c.MaxLeaderboardLimit:
		return fmt.Errorf("%w: default_top_n %d exceeds max_leaderboard_limit %d", ErrInvalidConfig, c.DefaultTopN, c.MaxLeaderboardLimit)
	case c.NarrativeTimeoutMS < 1:
		return fmt.Errorf("%w: narrative_timeout_ms must be positive", ErrInvalidConfig)
	case c.NarrativeRatePerMinute < 1:
		return fmt.Errorf("%w: narrative_rate_per_minute must be positive", ErrInvalidConfig)
	case c.NarrativeBreakerFailures < 1:
		return fmt.Errorf("%w: narrative_breaker_failures must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.MetricsNamespace) == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	}
	for i, b := range c.MetricsBucketsMS {
		if b <= 0 || (i > 0 && b <= c.MetricsBucketsMS[i-1]) {
			return fmt.Errorf("%w: metrics_buckets_ms must be positive and increasing", ErrInvalidConfig)
		}
	}
	return nil
}
