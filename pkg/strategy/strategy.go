package strategy

import (
	"fmt"

	"github.com/aretw0/crapsim/pkg/domain"
)

// Placement is one wager the strategy wants on the table before the next roll.
// For odds, BetID names the parent.
type Placement struct {
	Kind   domain.BetKind
	Odds   bool
	BetID  int
	Amount int64
}

// Strategy decides the bets to place before each roll.
type Strategy struct {
	minBet       int64
	oddsMultiple int
	oddsOff      bool
	growBets     bool
	growOdds     bool
	maxCome      int
	sizer        Sizer
	schedule     OddsSchedule
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithSizer replaces the growth curve used by GrowBets and GrowOdds.
func WithSizer(s Sizer) Option {
	return func(st *Strategy) {
		st.sizer = s
	}
}

// WithSchedule replaces the odds schedule named by the scenario.
func WithSchedule(s OddsSchedule) Option {
	return func(st *Strategy) {
		st.schedule = s
	}
}

// New builds the strategy described by a scenario.
func New(sc domain.Scenario, opts ...Option) (*Strategy, error) {
	schedule, err := Schedule(sc.OddsSchedule, sc.OddsMultiple)
	if err != nil {
		return nil, err
	}
	step := sc.GrowthStep
	if step <= 0 {
		step = 20 * sc.MinBet
	}
	st := &Strategy{
		minBet:       sc.MinBet,
		oddsMultiple: sc.OddsMultiple,
		oddsOff:      sc.OddsOffWithoutPoint,
		growBets:     sc.GrowBets,
		growOdds:     sc.GrowOdds,
		maxCome:      sc.MaxComeBets,
		sizer:        Milestones{Unit: sc.MinBet, Step: step},
		schedule:     schedule,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st, nil
}

// Schedule resolves an odds schedule by name. An empty name is the ladder.
func Schedule(name string, multiple int) (OddsSchedule, error) {
	switch name {
	case "", domain.ScheduleLadder:
		return Ladder{Max: multiple}, nil
	case domain.ScheduleFlat:
		return FlatOdds{Max: multiple}, nil
	}
	return nil, fmt.Errorf("unknown odds schedule %q", name)
}

// MaxMultiple returns the largest odds multiple sc can ever place. The
// ladder never goes past LadderTop, whatever OddsMultiple asks for.
func MaxMultiple(sc domain.Scenario) int {
	switch sc.OddsSchedule {
	case "", domain.ScheduleLadder:
		return min(sc.OddsMultiple, LadderTop)
	}
	return sc.OddsMultiple
}

// BaseSize returns the flat bet size for a bankroll: MinBet, or the grown
// size rounded down to a multiple of MinBet.
func (s *Strategy) BaseSize(bankroll int64) int64 {
	if !s.growBets {
		return s.minBet
	}
	return max(s.minBet, roundDown(s.sizer.Size(bankroll), s.minBet))
}

// OddsAmount returns the odds to lay behind bet given the chips available.
// Zero means no odds.
func (s *Strategy) OddsAmount(bet domain.Bet, bankroll, available int64) int64 {
	mult := int64(s.schedule.Multiple(bet.Point))
	if mult <= 0 || !bet.Established() {
		return 0
	}
	unit := s.minBet
	if s.growOdds {
		unit = max(bet.Amount, roundDown(s.sizer.Size(bankroll), s.minBet))
	}
	amount := min(mult*unit, int64(s.oddsMultiple)*bet.Amount, available)
	return roundDown(amount, domain.OddsIncrement(bet.Point))
}

// Plan returns the placements to make before the next roll, in the order
// they must be applied.
func (s *Strategy) Plan(snap domain.Snapshot) []Placement {
	var (
		out       []Placement
		available = snap.Bankroll
		base      = s.BaseSize(snap.Bankroll)
	)

	flat := func() int64 {
		amount := min(base, roundDown(available, s.minBet))
		if amount < s.minBet {
			return 0
		}
		return amount
	}

	if _, ok := snap.Line(); !ok && !snap.Point.IsOn() {
		if amount := flat(); amount > 0 {
			out = append(out, Placement{Kind: domain.KindLine, Amount: amount})
			available -= amount
		}
	}

	if snap.Point.IsOn() {
		waiting, established := 0, 0
		for _, b := range snap.Come() {
			if b.Established() {
				established++
			} else {
				waiting++
			}
		}
		if waiting == 0 && established < s.maxCome {
			if amount := flat(); amount > 0 {
				out = append(out, Placement{Kind: domain.KindCome, Amount: amount})
				available -= amount
			}
		}
	}

	for _, b := range snap.Bets {
		if b.Odds != nil || !b.Established() {
			continue
		}
		if b.Kind == domain.KindCome && s.oddsOff && !snap.Point.IsOn() {
			continue
		}
		if amount := s.OddsAmount(b, snap.Bankroll, available); amount > 0 {
			out = append(out, Placement{Kind: b.Kind, Odds: true, BetID: b.ID, Amount: amount})
			available -= amount
		}
	}
	return out
}

// ComeOddsWorking reports whether come-bet odds are in action on a roll
// made with the given main point.
func (s *Strategy) ComeOddsWorking(point domain.Point) bool {
	return !s.oddsOff || point.IsOn()
}

// MinBet returns the table minimum the strategy plays.
func (s *Strategy) MinBet() int64 {
	return s.minBet
}
