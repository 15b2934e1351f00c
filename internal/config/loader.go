package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TALENTFLOW_CONFIG is set
//  3. env (prefix TALENTFLOW_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TALENTFLOW_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TALENTFLOW_ADDR, TALENTFLOW_LATENCY_MIN_MS, ...
	// Map env keys like TALENTFLOW_DB_PATH -> db_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TALENTFLOW_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "talentflow_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies the basic invariants the rest of the service relies on.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DBPath == "":
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	case c.LatencyMinMS < 0 || c.LatencyMaxMS < c.LatencyMinMS:
		return fmt.Errorf("%w: latency range must satisfy 0 <= min <= max", ErrInvalidConfig)
	case c.WriteFailureRate < 0 || c.WriteFailureRate > 1:
		return fmt.Errorf("%w: write_failure_rate must be within [0,1]", ErrInvalidConfig)
	case c.ReorderFailureRate < 0 || c.ReorderFailureRate > 1:
		return fmt.Errorf("%w: reorder_failure_rate must be within [0,1]", ErrInvalidConfig)
	case c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize:
		return fmt.Errorf("%w: page sizes must satisfy 1 <= default <= max", ErrInvalidConfig)
	}
	return nil
}
