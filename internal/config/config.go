// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the sqlite file backing the persistent store.
	// ":memory:" keeps everything in-process (used by tests).
	DBPath string `koanf:"db_path"`

	// LatencyMinMS and LatencyMaxMS bound the injected network latency.
	LatencyMinMS int `koanf:"latency_min_ms"`
	LatencyMaxMS int `koanf:"latency_max_ms"`

	// WriteFailureRate is the Bernoulli probability of an injected server
	// error on mutating endpoints.
	WriteFailureRate float64 `koanf:"write_failure_rate"`

	// ReorderFailureRate overrides WriteFailureRate for job reorders.
	ReorderFailureRate float64 `koanf:"reorder_failure_rate"`

	// RandomSeed seeds the fault/latency rng. Zero picks a random seed.
	RandomSeed int64 `koanf:"random_seed"`

	// ErrorClearMS is how long a transient mutation error stays visible
	// before auto-clearing.
	ErrorClearMS int `koanf:"error_clear_ms"`

	// DefaultPageSize and MaxPageSize bound list endpoints.
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// Seed volumes applied when the store is empty at startup.
	SeedJobs        int `koanf:"seed_jobs"`
	SeedCandidates  int `koanf:"seed_candidates"`
	SeedAssessments int `koanf:"seed_assessments"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DBPath:             "talentflow.db",
		LatencyMinMS:       200,
		LatencyMaxMS:       1200,
		WriteFailureRate:   0.10,
		ReorderFailureRate: 0.08,
		RandomSeed:         0,
		ErrorClearMS:       3000,
		DefaultPageSize:    10,
		MaxPageSize:        100,
		SeedJobs:           25,
		SeedCandidates:     1000,
		SeedAssessments:    3,
	}
}
