package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/crapsim"
	"github.com/aretw0/crapsim/pkg/adapters/file"
	"github.com/aretw0/crapsim/pkg/adapters/memory"
	"github.com/aretw0/crapsim/pkg/adapters/redis"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/ports"
)

// StoreOptions selects where reports are kept. Redis wins over a directory;
// with neither, reports live in memory for the life of the process.
type StoreOptions struct {
	RedisURL  string
	ReportDir string
	Settings  Settings
}

// createStore builds the report store and, for Redis, a distributed locker.
// The returned close function releases any connection.
func createStore(opts StoreOptions) (ports.ReportStore, ports.Locker, func() error, error) {
	noop := func() error { return nil }

	switch {
	case opts.RedisURL != "":
		store, err := redis.NewFromURL(opts.RedisURL, redis.WithTTL(opts.Settings.ReportTTL))
		if err != nil {
			return nil, nil, noop, err
		}
		return store, redis.NewLocker(store.Client(), "crapsim:"), store.Close, nil
	case opts.ReportDir != "":
		return file.New(opts.ReportDir), nil, noop, nil
	default:
		return memory.NewStore(), nil, noop, nil
	}
}

// NewSimulator wires a Simulator with standard CLI conventions. The returned
// function closes the report store.
func NewSimulator(opts StoreOptions, logger *slog.Logger, debug bool, extra ...crapsim.Option) (*crapsim.Simulator, func() error, error) {
	store, locker, closeFn, err := createStore(opts)
	if err != nil {
		return nil, closeFn, fmt.Errorf("error initializing report store: %w", err)
	}

	simOpts := []crapsim.Option{
		crapsim.WithLogger(logger),
		crapsim.WithStore(store),
	}
	if locker != nil {
		simOpts = append(simOpts, crapsim.WithLocker(locker))
	}
	if debug {
		simOpts = append(simOpts, crapsim.WithHooks(createDebugHooks(logger)))
	}
	simOpts = append(simOpts, extra...)
	return crapsim.New(simOpts...), closeFn, nil
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnTrialEnd: func(r domain.TrialResult) {
			logger.Debug("trial finished", "trial", r.Trial, "rolls", r.Rolls, "max_bankroll", r.MaxBankroll, "truncated", r.Truncated)
		},
		OnDefect: func(err error) {
			logger.Error("table invariant broken", "error", err)
		},
	}
}
