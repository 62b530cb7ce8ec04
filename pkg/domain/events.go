package domain

// Outcome is how a single wager resolved.
type Outcome string

const (
	OutcomeWin    Outcome = "win"
	OutcomeLose   Outcome = "lose"
	OutcomeReturn Outcome = "return" // stake handed back unpaid (odds off)
	OutcomeTravel Outcome = "travel" // come bet moved to its point
)

// Settlement records one wager touched by a roll.
// Credit is what went back to the bankroll: stake plus winnings on a win,
// the stake on a return, zero on a loss or travel.
type Settlement struct {
	BetID   int     `json:"bet_id"`
	Kind    BetKind `json:"kind"`
	Point   Point   `json:"point"`
	Outcome Outcome `json:"outcome"`
	Stake   int64   `json:"stake"`
	Odds    int64   `json:"odds"`
	Credit  int64   `json:"credit"`
}

// RollEvent is emitted after a roll has been settled.
type RollEvent struct {
	Trial       int          `json:"trial"`
	Roll        int          `json:"roll"`
	Dice        Roll         `json:"dice"`
	PointBefore Point        `json:"point_before"`
	PointAfter  Point        `json:"point_after"`
	Bankroll    int64        `json:"bankroll"`
	Settlements []Settlement `json:"settlements,omitempty"`
}

// PlacementEvent is emitted when the strategy puts chips on the table.
type PlacementEvent struct {
	Trial    int     `json:"trial"`
	Roll     int     `json:"roll"`
	Kind     BetKind `json:"kind"`
	Odds     bool    `json:"odds"`
	Amount   int64   `json:"amount"`
	Bankroll int64   `json:"bankroll"`
}

// Hooks defines callbacks for simulator observability.
// Every field is optional. Hooks run synchronously on the trial's goroutine,
// so implementations shared across trials must be safe for concurrent use.
type Hooks struct {
	OnPlace    func(PlacementEvent)
	OnRoll     func(RollEvent)
	OnTrialEnd func(TrialResult)
	OnDefect   func(error)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnPlace:    chain(h.OnPlace, other.OnPlace),
		OnRoll:     chain(h.OnRoll, other.OnRoll),
		OnTrialEnd: chain(h.OnTrialEnd, other.OnTrialEnd),
		OnDefect:   chain(h.OnDefect, other.OnDefect),
	}
}

func chain[T any](a, b func(T)) func(T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(v T) {
		a(v)
		b(v)
	}
}
