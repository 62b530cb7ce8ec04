package strategy

import "github.com/aretw0/crapsim/pkg/domain"

// Sizer maps a bankroll to a base bet size. Implementations must be
// monotonic non-decreasing in bankroll.
type Sizer interface {
	Size(bankroll int64) int64
}

// SizerFunc adapts a plain function to a Sizer.
type SizerFunc func(bankroll int64) int64

// Size calls f.
func (f SizerFunc) Size(bankroll int64) int64 {
	return f(bankroll)
}

// Flat always bets the same unit.
type Flat struct {
	Unit int64
}

// Size returns the unit.
func (f Flat) Size(int64) int64 {
	return f.Unit
}

// Milestones adds one Unit of base bet for every Step of bankroll.
// A bankroll below Step still bets one Unit.
type Milestones struct {
	Unit int64
	Step int64
}

// Size returns Unit * max(1, bankroll/Step).
func (m Milestones) Size(bankroll int64) int64 {
	if m.Step <= 0 {
		return m.Unit
	}
	return m.Unit * max(1, bankroll/m.Step)
}

// OddsSchedule returns the odds multiple allowed on a point.
type OddsSchedule interface {
	Multiple(p domain.Point) int
}

// LadderTop is the highest tier of the ladder schedule.
const LadderTop = 3

// Ladder is the "1-2-3" schedule: 1x on 4/10, 2x on 5/9 and 3x on 6/8,
// each capped at Max.
type Ladder struct {
	Max int
}

// Multiple returns the capped ladder tier for p.
func (l Ladder) Multiple(p domain.Point) int {
	tier := 0
	switch p {
	case 4, 10:
		tier = 1
	case 5, 9:
		tier = 2
	case 6, 8:
		tier = 3
	}
	return min(tier, l.Max)
}

// FlatOdds allows the same multiple on every point.
type FlatOdds struct {
	Max int
}

// Multiple returns Max for every point number.
func (f FlatOdds) Multiple(p domain.Point) int {
	if !domain.IsPointNumber(int(p)) {
		return 0
	}
	return f.Max
}

// roundDown returns the largest multiple of step not above v.
func roundDown(v, step int64) int64 {
	if step <= 0 || v <= 0 {
		return 0
	}
	return v - v%step
}
