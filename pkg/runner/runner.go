package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	goruntime "runtime"
	"time"

	"github.com/aretw0/crapsim/internal/runtime"
	"github.com/aretw0/crapsim/pkg/config"
	"github.com/aretw0/crapsim/pkg/dice"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/strategy"
	"golang.org/x/sync/errgroup"
)

// Runner plays scenarios. It is safe for concurrent use.
type Runner struct {
	Logger  *slog.Logger
	Hooks   domain.Hooks
	Workers int
	Sizer   strategy.Sizer
}

// Result is the raw outcome of a scenario.
type Result struct {
	Seed    uint64
	Trials  []domain.TrialResult // indexed by trial
	Elapsed time.Duration
}

// NewRunner creates a runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run validates the scenario and plays all of its trials.
// Configuration problems are reported before any trial starts; the first
// invariant violation aborts the batch. Cancelling ctx stops scheduling
// new trials and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, sc domain.Scenario) (*Result, error) {
	if err := config.Validate(sc); err != nil {
		return nil, err
	}

	var stOpts []strategy.Option
	if r.Sizer != nil {
		stOpts = append(stOpts, strategy.WithSizer(r.Sizer))
	}
	st, err := strategy.New(sc, stOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	if m := strategy.MaxMultiple(sc); m < sc.OddsMultiple {
		r.Logger.Info("ladder schedule caps odds",
			"label", sc.Label,
			"odds_multiple", sc.OddsMultiple,
			"max_multiple", m,
		)
	}

	seed := dice.RandomSeed()
	if sc.Seed != nil {
		seed = *sc.Seed
	}
	stream := dice.NewStream(seed)

	engine := runtime.NewEngine(st, sc.InitialBankroll,
		runtime.WithHooks(r.Hooks),
		runtime.WithLogger(r.Logger),
		runtime.WithMaxRolls(sc.MaxRolls),
	)

	workers := r.workers(sc)
	r.Logger.Info("scenario started",
		"label", sc.Label,
		"trials", sc.Trials,
		"workers", workers,
		"seed", seed,
	)
	start := time.Now()

	results := make([]domain.TrialResult, sc.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < sc.Trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := engine.Run(i, stream.Source(i))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.Logger.Error("scenario aborted", "label", sc.Label, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	r.Logger.Info("scenario finished",
		"label", sc.Label,
		"trials", sc.Trials,
		"elapsed", elapsed,
	)
	return &Result{Seed: seed, Trials: results, Elapsed: elapsed}, nil
}

func (r *Runner) workers(sc domain.Scenario) int {
	n := sc.Workers
	if n <= 0 {
		n = r.Workers
	}
	if n <= 0 {
		n = goruntime.GOMAXPROCS(0)
	}
	return max(1, min(n, sc.Trials))
}
