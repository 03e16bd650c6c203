package decexpr

import (
	"fmt"

	"github.com/zephyrtronium/decexpr/internal/config"
)

// NewEngineFromEnv creates an engine using the ambient settings in the
// environment:
//
//	DECEXPR_SCALE      scale of results (default 15)
//	DECEXPR_LOG_LEVEL  debug, info, warn, or error (default info)
//
// The environment is read once, here. Options given to NewEngineFromEnv are
// applied afterward and override the environment.
func NewEngineFromEnv(opts ...Option) (*Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	l, err := cfg.Logger()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	e := NewEngine(Scale(cfg.Scale), Logger(l))
	return e.With(opts...), nil
}
