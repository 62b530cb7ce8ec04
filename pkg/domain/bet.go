package domain

// BetKind distinguishes the two flat wagers the strategy uses.
type BetKind string

const (
	KindLine BetKind = "line"
	KindCome BetKind = "come"
)

// OddsBet is the true-odds wager attached behind a line or come bet.
// It only exists as a field of its parent, so it cannot outlive it.
type OddsBet struct {
	Amount int64 `json:"amount"`
}

// Bet is a pass-line or come wager.
// Point stays PointOff until the bet's own come-out roll establishes it.
type Bet struct {
	ID     int      `json:"id"`
	Kind   BetKind  `json:"kind"`
	Amount int64    `json:"amount"`
	Point  Point    `json:"point"`
	Odds   *OddsBet `json:"odds,omitempty"`
	Placed int      `json:"placed"` // roll index at placement
}

// Established reports whether the bet has travelled to a point.
func (b Bet) Established() bool {
	return b.Point.IsOn()
}

// Exposure is the total amount at risk on the bet, odds included.
func (b Bet) Exposure() int64 {
	if b.Odds == nil {
		return b.Amount
	}
	return b.Amount + b.Odds.Amount
}

// Clone returns a copy that shares no memory with b.
func (b Bet) Clone() Bet {
	if b.Odds != nil {
		o := *b.Odds
		b.Odds = &o
	}
	return b
}

// Snapshot is a read-only view of a session handed to strategies and hooks.
type Snapshot struct {
	Roll     int   `json:"roll"`
	Bankroll int64 `json:"bankroll"`
	Point    Point `json:"point"`
	Bets     []Bet `json:"bets"`
}

// Line returns the active pass-line bet, if any.
func (s Snapshot) Line() (Bet, bool) {
	for _, b := range s.Bets {
		if b.Kind == KindLine {
			return b, true
		}
	}
	return Bet{}, false
}

// Come returns the come bets, oldest first.
func (s Snapshot) Come() []Bet {
	var out []Bet
	for _, b := range s.Bets {
		if b.Kind == KindCome {
			out = append(out, b)
		}
	}
	return out
}

// Outstanding reports whether any wager is still on the table.
func (s Snapshot) Outstanding() bool {
	return len(s.Bets) > 0
}
