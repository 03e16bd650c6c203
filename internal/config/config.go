package config

import (
	"fmt"
	"math"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
)

// MaxScale is the largest scale an engine may use. Scales are converted to
// int32 for decimal operations, with room to spare for intermediate results.
const MaxScale = math.MaxInt32 / 2

// Config holds the ambient settings for engines.
type Config struct {
	// Scale is the number of fractional digits results keep.
	Scale uint `env:"DECEXPR_SCALE" envDefault:"15"`

	// LogLevel is the minimum level of engine log messages.
	LogLevel string `env:"DECEXPR_LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scale > MaxScale {
		return fmt.Errorf("DECEXPR_SCALE must be at most %d", MaxScale)
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("DECEXPR_LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// Logger builds a production logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Scale=%d, LogLevel=%s}", c.Scale, c.LogLevel)
}
