package dice

import "github.com/aretw0/crapsim/pkg/domain"

// Sequence replays scripted rolls in order, then hands over to Fallback.
// Useful for reproducing a specific hand.
type Sequence struct {
	rolls    []domain.Roll
	next     int
	Fallback Source
}

// NewSequence builds a Sequence from dice pairs. Once the script runs out
// the sequence continues with a Source seeded by 1.
func NewSequence(rolls ...domain.Roll) *Sequence {
	return &Sequence{rolls: rolls, Fallback: New(1)}
}

// Sums builds a Sequence from totals, splitting each into a valid pair.
// Totals outside 2..12 are clamped.
func Sums(totals ...int) *Sequence {
	rolls := make([]domain.Roll, 0, len(totals))
	for _, t := range totals {
		t = min(max(t, 2), 12)
		d1 := min(t-1, 6)
		rolls = append(rolls, domain.Roll{D1: d1, D2: t - d1})
	}
	return NewSequence(rolls...)
}

// Roll returns the next scripted roll.
func (s *Sequence) Roll() domain.Roll {
	if s.next < len(s.rolls) {
		r := s.rolls[s.next]
		s.next++
		return r
	}
	return s.Fallback.Roll()
}

// Remaining reports how many scripted rolls are left.
func (s *Sequence) Remaining() int {
	return len(s.rolls) - s.next
}
