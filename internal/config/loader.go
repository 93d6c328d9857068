package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment conventions.
const (
	EnvPrefix     = "SQUADFORM_"
	EnvConfigPath = EnvPrefix + "CONFIG"
	DefaultDotEnv = ".env"
)

// LoadOption adjusts how Load reads its sources.
type LoadOption func(*loadSettings)

type loadSettings struct {
	dotenv string
	file   string
}

// WithDotEnv reads variables from path before loading. An empty path skips
// the dotenv step.
func WithDotEnv(path string) LoadOption {
	return func(s *loadSettings) { s.dotenv = path }
}

// WithFile reads the YAML file at path instead of the one named by
// SQUADFORM_CONFIG.
func WithFile(path string) LoadOption {
	return func(s *loadSettings) { s.file = path }
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) from WithFile or SQUADFORM_CONFIG
//  3. env (prefix SQUADFORM_), including values read from .env
//
// Variables already set in the process win over .env entries.
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	settings := loadSettings{dotenv: DefaultDotEnv}
	for _, opt := range opts {
		opt(&settings)
	}

	if settings.dotenv != "" {
		if err := godotenv.Load(settings.dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, settings.dotenv, err)
		}
	}

	base := New(ctx)
	k := koanf.New(".")

	path := settings.file
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SQUADFORM_DEFAULT_TOP_N -> default_top_n. Underscores are kept to match
	// the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
