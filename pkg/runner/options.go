package runner

import (
	"log/slog"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/strategy"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHooks registers observability callbacks shared by every trial.
func WithHooks(hooks domain.Hooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithWorkers caps the number of trials played at once.
// A scenario's own workers setting takes precedence.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.Workers = n
	}
}

// WithSizer replaces the bet growth curve of every scenario.
func WithSizer(s strategy.Sizer) Option {
	return func(r *Runner) {
		r.Sizer = s
	}
}
