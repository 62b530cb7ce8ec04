package crapsim

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/ports"
	"github.com/aretw0/crapsim/pkg/quantile"
	"github.com/aretw0/crapsim/pkg/runner"
	"github.com/aretw0/crapsim/pkg/session"
	"github.com/aretw0/crapsim/pkg/strategy"
)

// ErrNoStore is returned by report lookups on a Simulator without a store.
var ErrNoStore = errors.New("no report store configured")

var _ ports.Simulator = (*Simulator)(nil)

// Simulator is the high-level entry point of the library.
// It runs scenarios, summarises them and optionally persists the reports.
type Simulator struct {
	store     ports.ReportStore
	locker    ports.Locker
	hooks     domain.Hooks
	logger    *slog.Logger
	workers   int
	sizer     strategy.Sizer
	fractions []float64
	method    quantile.Method
	lockTTL   time.Duration
	sessions  *session.Manager
	now       func() time.Time
}

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks called by every trial.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *Simulator) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithStore persists every finished report.
func WithStore(store ports.ReportStore) Option {
	return func(s *Simulator) {
		s.store = store
	}
}

// WithLocker serialises seeded scenarios across replicas sharing a store.
func WithLocker(locker ports.Locker) Option {
	return func(s *Simulator) {
		s.locker = locker
	}
}

// WithWorkers caps how many trials run at once.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		s.workers = n
	}
}

// WithSizer replaces the bet growth curve.
func WithSizer(sizer strategy.Sizer) Option {
	return func(s *Simulator) {
		s.sizer = sizer
	}
}

// WithFractions sets the quantile fractions reported (default 0, 0.1, ..., 1).
func WithFractions(fractions ...float64) Option {
	return func(s *Simulator) {
		s.fractions = fractions
	}
}

// WithLockTTL sets how long a distributed scenario lock may be held.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *Simulator) {
		s.lockTTL = ttl
	}
}

// WithQuantileMethod selects nearest-rank (default) or linear quantiles.
func WithQuantileMethod(m quantile.Method) Option {
	return func(s *Simulator) {
		s.method = m
	}
}

// New creates a Simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		fractions: quantile.DefaultFractions(),
		method:    quantile.Nearest,
		lockTTL:   session.DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	sopts := []session.Option{session.WithLogger(s.logger), session.WithTTL(s.lockTTL)}
	if s.locker != nil {
		sopts = append(sopts, session.WithLocker(s.locker))
	}
	s.sessions = session.NewManager(sopts...)
	return s
}

// Simulate plays every trial of sc and returns the summarised report.
// Seeded scenarios are deterministic, so when a store is configured their
// report is looked up by ReportKey before anything is played. A custom
// sizer has no stable identity, so its reports are never served from the
// store.
func (s *Simulator) Simulate(ctx context.Context, sc domain.Scenario) (*domain.Report, error) {
	if sc.Seed == nil || s.store == nil || s.sizer != nil {
		return s.play(ctx, sc, domain.NewReportID())
	}

	key := ReportKey(sc, s.fractions, s.method)
	var report *domain.Report
	err := s.sessions.WithLock(ctx, key, func(ctx context.Context) error {
		cached, err := s.store.Load(ctx, key)
		switch {
		case err == nil:
			s.logger.Info("report served from store", "id", key, "label", sc.Label)
			report = cached
			return nil
		case !errors.Is(err, domain.ErrReportNotFound):
			return fmt.Errorf("failed to look up report: %w", err)
		}
		report, err = s.play(ctx, sc, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Simulator) play(ctx context.Context, sc domain.Scenario, id string) (*domain.Report, error) {
	opts := []runner.Option{
		runner.WithLogger(s.logger),
		runner.WithHooks(s.hooks),
		runner.WithWorkers(s.workers),
	}
	if s.sizer != nil {
		opts = append(opts, runner.WithSizer(s.sizer))
	}

	res, err := runner.NewRunner(opts...).Run(ctx, sc)
	if err != nil {
		return nil, err
	}

	q, err := quantile.Summarize(res.Trials, s.fractions, s.method)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise scenario: %w", err)
	}

	seed := res.Seed
	sc.Seed = &seed
	report := &domain.Report{
		ID:        id,
		Label:     sc.Label,
		Scenario:  sc,
		Seed:      res.Seed,
		Trials:    res.Trials,
		Quantiles: q,
		CreatedAt: s.now().UTC(),
		Elapsed:   res.Elapsed,
	}

	if s.store != nil {
		if err := s.store.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}
	return report, nil
}

// Report loads a stored report.
func (s *Simulator) Report(ctx context.Context, id string) (*domain.Report, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.Load(ctx, id)
}

// Reports lists stored report IDs.
func (s *Simulator) Reports(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.List(ctx)
}

// ScenarioKey returns the ReportKey of a seeded scenario summarised with
// the default fractions and method.
func ScenarioKey(sc domain.Scenario) string {
	return ReportKey(sc, quantile.DefaultFractions(), quantile.Nearest)
}

// ReportKey returns a stable identifier for the report of a seeded scenario
// summarised at fractions with method. Workers and label do not change
// results and are left out.
func ReportKey(sc domain.Scenario, fractions []float64, method quantile.Method) string {
	sc.Workers = 0
	sc.Label = ""
	if method == "" {
		method = quantile.Nearest
	}
	data, _ := json.Marshal(struct {
		Scenario  domain.Scenario `json:"scenario"`
		Fractions []float64       `json:"fractions"`
		Method    quantile.Method `json:"method"`
	}{sc, fractions, method})
	sum := sha256.Sum256(data)
	return "s-" + hex.EncodeToString(sum[:12])
}
