package repository

import gormlogger "gorm.io/gorm/logger"

// openConfig collects tunables for Open.
type openConfig struct {
	gormLogLevel gormlogger.LogLevel
}

// Option applies a configuration option to Open.
type Option func(*openConfig)

func newOpenConfig(opts ...Option) *openConfig {
	cfg := &openConfig{
		gormLogLevel: gormlogger.Silent,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithGormLogLevel sets the verbosity of the underlying GORM logger.
func WithGormLogLevel(level gormlogger.LogLevel) Option {
	return func(c *openConfig) {
		c.gormLogLevel = level
	}
}
