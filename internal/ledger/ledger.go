// Package ledger holds a player's bankroll and wagers and settles them
// against each roll.
package ledger

import (
	"github.com/aretw0/crapsim/internal/table"
	"github.com/aretw0/crapsim/pkg/domain"
)

// Ledger owns the bankroll and the outstanding bets of one session.
// It is not safe for concurrent use.
type Ledger struct {
	bankroll int64
	bets     []domain.Bet // line bet (if any) first, then come bets oldest first
	nextID   int
}

// New returns a ledger holding bankroll and no bets.
func New(bankroll int64) *Ledger {
	return &Ledger{bankroll: bankroll, nextID: 1}
}

// Bankroll returns the chips not currently on the table.
func (l *Ledger) Bankroll() int64 {
	return l.bankroll
}

// Outstanding reports whether any bet still needs settlement.
func (l *Ledger) Outstanding() bool {
	return len(l.bets) > 0
}

// Exposure returns the total amount currently wagered.
func (l *Ledger) Exposure() int64 {
	var total int64
	for _, b := range l.bets {
		total += b.Exposure()
	}
	return total
}

// Snapshot returns a copy of the ledger state for read-only consumers.
func (l *Ledger) Snapshot(roll int, point domain.Point) domain.Snapshot {
	bets := make([]domain.Bet, len(l.bets))
	for i, b := range l.bets {
		bets[i] = b.Clone()
	}
	return domain.Snapshot{Roll: roll, Bankroll: l.bankroll, Point: point, Bets: bets}
}

// PlaceLine puts a pass-line bet on the table.
func (l *Ledger) PlaceLine(amount int64, roll int) (domain.Bet, error) {
	for _, b := range l.bets {
		if b.Kind == domain.KindLine {
			return domain.Bet{}, domain.Invariantf("second line bet while bet %d is active", b.ID)
		}
	}
	if err := l.debit(amount); err != nil {
		return domain.Bet{}, err
	}
	bet := domain.Bet{ID: l.id(), Kind: domain.KindLine, Amount: amount, Placed: roll}
	l.bets = append([]domain.Bet{bet}, l.bets...)
	return bet, nil
}

// PlaceCome puts a come bet on the table.
func (l *Ledger) PlaceCome(amount int64, roll int) (domain.Bet, error) {
	if err := l.debit(amount); err != nil {
		return domain.Bet{}, err
	}
	bet := domain.Bet{ID: l.id(), Kind: domain.KindCome, Amount: amount, Placed: roll}
	l.bets = append(l.bets, bet)
	return bet, nil
}

// AttachOdds places an odds bet behind the bet with the given ID.
// The parent must exist, be established and carry no odds yet.
func (l *Ledger) AttachOdds(betID int, amount int64) error {
	i := l.find(betID)
	if i < 0 {
		return domain.Invariantf("odds of %d for bet %d without parent", amount, betID)
	}
	parent := &l.bets[i]
	if !parent.Established() {
		return domain.Invariantf("odds on bet %d before its point is established", betID)
	}
	if parent.Odds != nil {
		return domain.Invariantf("bet %d already carries odds", betID)
	}
	if err := l.debit(amount); err != nil {
		return err
	}
	parent.Odds = &domain.OddsBet{Amount: amount}
	return nil
}

func (l *Ledger) debit(amount int64) error {
	if amount <= 0 {
		return domain.Invariantf("non-positive wager %d", amount)
	}
	if amount > l.bankroll {
		return domain.Invariantf("wager %d exceeds bankroll %d", amount, l.bankroll)
	}
	l.bankroll -= amount
	return nil
}

func (l *Ledger) id() int {
	id := l.nextID
	l.nextID++
	return id
}

func (l *Ledger) find(betID int) int {
	for i, b := range l.bets {
		if b.ID == betID {
			return i
		}
	}
	return -1
}

// Settle resolves every bet affected by a roll of sum.
// point is the table point before the roll. comeOddsWorking is false when
// come-bet odds are off for this roll; they are then returned unpaid.
// Settlements are reported line bet first, then come bets oldest first.
// The bankroll is only updated when the whole roll settles cleanly.
func (l *Ledger) Settle(sum int, point domain.Point, comeOddsWorking bool) ([]domain.Settlement, error) {
	var (
		out     []domain.Settlement
		kept    = make([]domain.Bet, 0, len(l.bets))
		credit  int64
		covered = make(map[domain.Point]int)
	)

	for _, b := range l.bets {
		if b.Kind == domain.KindCome && b.Established() {
			if prev, dup := covered[b.Point]; dup {
				return nil, domain.Invariantf("come bets %d and %d share point %s", prev, b.ID, b.Point)
			}
			covered[b.Point] = b.ID
		}
	}

	for _, b := range l.bets {
		s, resolved, err := l.settleOne(b, sum, point, comeOddsWorking)
		if err != nil {
			return nil, err
		}
		if s.Outcome == domain.OutcomeTravel && b.Kind == domain.KindCome {
			if other, taken := covered[s.Point]; taken && other != b.ID && !resolvedOn(out, other) {
				return nil, domain.Invariantf("come bet %d travels to %s already covered by bet %d", b.ID, s.Point, other)
			}
			covered[s.Point] = b.ID
			b.Point = s.Point
		}
		if b.Kind == domain.KindLine && s.Outcome == domain.OutcomeTravel {
			b.Point = s.Point
		}
		if s.Outcome != "" {
			out = append(out, s)
		}
		credit += s.Credit
		if !resolved {
			kept = append(kept, b)
		}
	}

	l.bets = kept
	l.bankroll += credit
	return out, nil
}

func resolvedOn(out []domain.Settlement, betID int) bool {
	for _, s := range out {
		if s.BetID == betID && s.Outcome != domain.OutcomeTravel {
			return true
		}
	}
	return false
}

// settleOne decides the fate of a single bet. An empty Outcome means the
// roll did not touch it.
func (l *Ledger) settleOne(b domain.Bet, sum int, point domain.Point, comeOddsWorking bool) (domain.Settlement, bool, error) {
	s := domain.Settlement{BetID: b.ID, Kind: b.Kind, Point: b.Point, Stake: b.Amount}
	if b.Odds != nil {
		s.Odds = b.Odds.Amount
	}

	if b.Kind == domain.KindLine {
		switch {
		case !b.Established() && point.IsOn():
			return s, false, domain.Invariantf("line bet %d has no point while the table point is %s", b.ID, point)
		case b.Established() && b.Point != point:
			return s, false, domain.Invariantf("line bet %d on %s but table point is %s", b.ID, b.Point, point)
		}
	}
	if b.Odds != nil && !b.Established() {
		return s, false, domain.Invariantf("bet %d carries odds without a point", b.ID)
	}

	if !b.Established() {
		switch table.Classify(sum) {
		case table.ClassNatural:
			s.Outcome = domain.OutcomeWin
			s.Credit = 2 * b.Amount
			return s, true, nil
		case table.ClassCraps:
			s.Outcome = domain.OutcomeLose
			return s, true, nil
		}
		s.Outcome = domain.OutcomeTravel
		s.Point = domain.Point(sum)
		return s, false, nil
	}

	working := b.Kind == domain.KindLine || comeOddsWorking
	switch sum {
	case int(b.Point):
		s.Outcome = domain.OutcomeWin
		s.Credit = 2 * b.Amount
		if b.Odds != nil {
			s.Credit += b.Odds.Amount
			if working {
				s.Credit += domain.OddsPayout(b.Point, b.Odds.Amount)
			}
		}
		return s, true, nil
	case 7:
		s.Outcome = domain.OutcomeLose
		if b.Odds != nil && !working {
			s.Credit = b.Odds.Amount
		}
		return s, true, nil
	}
	return s, false, nil
}
