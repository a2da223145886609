package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Engine explores every branch of a non-deterministic multi-tape machine.
// It is safe to call Simulate concurrently; each run owns its own state.
type Engine struct {
	table   *domain.Table
	dialect domain.Dialect
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine over a validated table.
func NewEngine(table *domain.Table, opts ...EngineOption) *Engine {
	e := &Engine{
		table:   table,
		dialect: table.Dialect(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the transition table the engine runs.
func (e *Engine) Table() *domain.Table {
	return e.table
}
