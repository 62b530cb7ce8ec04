package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/crapsim/internal/ledger"
	"github.com/aretw0/crapsim/internal/table"
	"github.com/aretw0/crapsim/pkg/dice"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/strategy"
)

// Planner decides the wagers placed before each roll.
type Planner interface {
	Plan(domain.Snapshot) []strategy.Placement
	ComeOddsWorking(point domain.Point) bool
	MinBet() int64
}

// Engine drives single trials: one session from the initial bankroll to ruin.
// An Engine holds no per-trial state and may run trials concurrently.
type Engine struct {
	planner  Planner
	initial  int64
	maxRolls int
	hooks    domain.Hooks
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithHooks registers observability callbacks.
func WithHooks(h domain.Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithLogger sets the logger used for per-roll debug output.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMaxRolls stops a trial after n rolls. Zero means no cap.
func WithMaxRolls(n int) EngineOption {
	return func(e *Engine) {
		e.maxRolls = n
	}
}

// NewEngine creates an engine playing planner from the initial bankroll.
func NewEngine(planner Planner, initial int64, opts ...EngineOption) *Engine {
	e := &Engine{
		planner: planner,
		initial: initial,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run plays trial index with the given dice until the bankroll cannot cover
// the table minimum and no bet is left to settle.
// A broken invariant halts the trial and is returned as *domain.InvariantError.
func (e *Engine) Run(index int, src dice.Source) (domain.TrialResult, error) {
	var (
		led    = ledger.New(e.initial)
		tb     table.Table
		minBet = e.planner.MinBet()
		debug  = e.logger.Enabled(context.Background(), slog.LevelDebug)
		res    = domain.TrialResult{Trial: index, MaxBankroll: e.initial}
	)

	for led.Bankroll() >= minBet || led.Outstanding() {
		if e.maxRolls > 0 && res.Rolls >= e.maxRolls {
			res.Truncated = true
			break
		}

		for _, p := range e.planner.Plan(led.Snapshot(res.Rolls, tb.Point())) {
			if err := e.place(led, p, res.Rolls); err != nil {
				return res, e.defect(err, index, res.Rolls)
			}
			if e.hooks.OnPlace != nil {
				e.hooks.OnPlace(domain.PlacementEvent{
					Trial: index, Roll: res.Rolls, Kind: p.Kind, Odds: p.Odds,
					Amount: p.Amount, Bankroll: led.Bankroll(),
				})
			}
		}

		roll := src.Roll()
		before := tb.Point()
		settled, err := led.Settle(roll.Sum(), before, e.planner.ComeOddsWorking(before))
		if err != nil {
			return res, e.defect(err, index, res.Rolls)
		}
		tr := tb.Advance(roll.Sum())
		res.Rolls++

		if led.Bankroll() < 0 {
			return res, e.defect(domain.Invariantf("bankroll %d is negative", led.Bankroll()), index, res.Rolls)
		}
		res.MaxBankroll = max(res.MaxBankroll, led.Bankroll())

		if debug {
			e.logger.Debug("roll",
				"trial", index,
				"roll", res.Rolls,
				"dice", roll.String(),
				"event", tr.Event,
				"point", tr.To.String(),
				"bankroll", led.Bankroll(),
				"settled", len(settled),
			)
		}
		if e.hooks.OnRoll != nil {
			e.hooks.OnRoll(domain.RollEvent{
				Trial: index, Roll: res.Rolls, Dice: roll,
				PointBefore: tr.From, PointAfter: tr.To,
				Bankroll: led.Bankroll(), Settlements: settled,
			})
		}
	}

	res.FinalBankroll = led.Bankroll()
	if debug {
		e.logger.Debug("trial finished",
			"trial", index,
			"rolls", res.Rolls,
			"max_bankroll", res.MaxBankroll,
			"final_bankroll", res.FinalBankroll,
			"truncated", res.Truncated,
		)
	}
	if e.hooks.OnTrialEnd != nil {
		e.hooks.OnTrialEnd(res)
	}
	return res, nil
}

func (e *Engine) place(led *ledger.Ledger, p strategy.Placement, roll int) error {
	switch {
	case p.Odds:
		return led.AttachOdds(p.BetID, p.Amount)
	case p.Kind == domain.KindLine:
		_, err := led.PlaceLine(p.Amount, roll)
		return err
	case p.Kind == domain.KindCome:
		_, err := led.PlaceCome(p.Amount, roll)
		return err
	}
	return domain.Invariantf("unknown placement kind %q", p.Kind)
}

// defect stamps trial and roll on an invariant error and reports it.
func (e *Engine) defect(err error, trial, roll int) error {
	var inv *domain.InvariantError
	if errors.As(err, &inv) {
		inv.Trial, inv.Roll = trial, roll
	}
	e.logger.Error("trial halted", "trial", trial, "roll", roll, "error", err)
	if e.hooks.OnDefect != nil {
		e.hooks.OnDefect(err)
	}
	return err
}
