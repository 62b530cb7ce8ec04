package ledger_test

import (
	"testing"

	"github.com/aretw0/crapsim/internal/ledger"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineOn returns a ledger holding a line bet already travelled to point.
func lineOn(t *testing.T, bankroll, amount int64, point domain.Point) (*ledger.Ledger, domain.Bet) {
	t.Helper()
	l := ledger.New(bankroll)
	bet, err := l.PlaceLine(amount, 0)
	require.NoError(t, err)
	out, err := l.Settle(int(point), domain.PointOff, true)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, domain.OutcomeTravel, out[0].Outcome)
	return l, bet
}

func TestLedger_ComeOut(t *testing.T) {
	t.Run("Natural pays even money", func(t *testing.T) {
		for _, sum := range []int{7, 11} {
			l := ledger.New(100)
			_, err := l.PlaceLine(10, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(90), l.Bankroll())

			out, err := l.Settle(sum, domain.PointOff, true)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, domain.OutcomeWin, out[0].Outcome)
			assert.Equal(t, int64(20), out[0].Credit)
			assert.Equal(t, int64(110), l.Bankroll())
			assert.False(t, l.Outstanding())
		}
	})

	t.Run("Craps loses", func(t *testing.T) {
		for _, sum := range []int{2, 3, 12} {
			l := ledger.New(100)
			_, err := l.PlaceLine(10, 0)
			require.NoError(t, err)

			out, err := l.Settle(sum, domain.PointOff, true)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, domain.OutcomeLose, out[0].Outcome)
			assert.Equal(t, int64(90), l.Bankroll())
			assert.False(t, l.Outstanding())
		}
	})

	t.Run("Number sets the bet's point", func(t *testing.T) {
		l, bet := lineOn(t, 100, 10, 9)
		snap := l.Snapshot(1, 9)
		line, ok := snap.Line()
		require.True(t, ok)
		assert.Equal(t, bet.ID, line.ID)
		assert.Equal(t, domain.Point(9), line.Point)
		assert.Equal(t, int64(90), l.Bankroll())
	})
}

func TestLedger_PointPayouts(t *testing.T) {
	tests := []struct {
		name  string
		point domain.Point
		odds  int64
		want  int64 // bankroll after the point is made
	}{
		{"4 pays 2:1", 4, 10, 100 - 10 - 10 + 20 + 10 + 20},
		{"10 pays 2:1", 10, 5, 100 - 10 - 5 + 20 + 5 + 10},
		{"5 pays 3:2", 5, 20, 100 - 10 - 20 + 20 + 20 + 30},
		{"9 pays 3:2", 9, 10, 100 - 10 - 10 + 20 + 10 + 15},
		{"6 pays 6:5", 6, 15, 100 - 10 - 15 + 20 + 15 + 18},
		{"8 pays 6:5", 8, 25, 100 - 10 - 25 + 20 + 25 + 30},
		{"no odds pays even money", 6, 0, 100 - 10 + 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, bet := lineOn(t, 100, 10, tt.point)
			if tt.odds > 0 {
				require.NoError(t, l.AttachOdds(bet.ID, tt.odds))
			}

			out, err := l.Settle(int(tt.point), tt.point, true)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, domain.OutcomeWin, out[0].Outcome)
			assert.Equal(t, tt.want, l.Bankroll())
			assert.False(t, l.Outstanding())
		})
	}
}

func TestLedger_SevenOut(t *testing.T) {
	l, line := lineOn(t, 200, 10, 5)
	require.NoError(t, l.AttachOdds(line.ID, 20))

	// Two come bets travel to 8 and 10, then a fresh one waits.
	come8, err := l.PlaceCome(10, 1)
	require.NoError(t, err)
	_, err = l.Settle(8, 5, true)
	require.NoError(t, err)
	require.NoError(t, l.AttachOdds(come8.ID, 25))

	come10, err := l.PlaceCome(10, 2)
	require.NoError(t, err)
	_, err = l.Settle(10, 5, true)
	require.NoError(t, err)

	pending, err := l.PlaceCome(10, 3)
	require.NoError(t, err)

	before := l.Bankroll()
	out, err := l.Settle(7, 5, true)
	require.NoError(t, err)

	require.Len(t, out, 4)
	assert.Equal(t, line.ID, out[0].BetID, "line bet settles first")
	assert.Equal(t, domain.OutcomeLose, out[0].Outcome)
	assert.Equal(t, int64(20), out[0].Odds)
	assert.Equal(t, come8.ID, out[1].BetID)
	assert.Equal(t, domain.OutcomeLose, out[1].Outcome)
	assert.Equal(t, come10.ID, out[2].BetID)
	assert.Equal(t, domain.OutcomeLose, out[2].Outcome)

	// A come bet still in its own come-out phase wins on 7.
	assert.Equal(t, pending.ID, out[3].BetID)
	assert.Equal(t, domain.OutcomeWin, out[3].Outcome)

	assert.Equal(t, before+20, l.Bankroll())
	assert.False(t, l.Outstanding(), "seven-out clears the table")
	assert.Zero(t, l.Exposure())
}

func TestLedger_ComeBets(t *testing.T) {
	t.Run("Come bet travels and wins on its number", func(t *testing.T) {
		l, _ := lineOn(t, 100, 5, 4)
		come, err := l.PlaceCome(5, 1)
		require.NoError(t, err)

		out, err := l.Settle(6, 4, true)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, domain.OutcomeTravel, out[0].Outcome)
		assert.Equal(t, domain.Point(6), out[0].Point)

		require.NoError(t, l.AttachOdds(come.ID, 10))
		out, err = l.Settle(6, 4, true)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(5+5+10+12), out[0].Credit)
	})

	t.Run("Old bet resolves before a new one travels to the same number", func(t *testing.T) {
		l, _ := lineOn(t, 100, 5, 4)
		old, err := l.PlaceCome(5, 1)
		require.NoError(t, err)
		_, err = l.Settle(8, 4, true)
		require.NoError(t, err)

		fresh, err := l.PlaceCome(5, 2)
		require.NoError(t, err)
		out, err := l.Settle(8, 4, true)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, old.ID, out[0].BetID)
		assert.Equal(t, domain.OutcomeWin, out[0].Outcome)
		assert.Equal(t, fresh.ID, out[1].BetID)
		assert.Equal(t, domain.OutcomeTravel, out[1].Outcome)

		come := l.Snapshot(3, 4).Come()
		require.Len(t, come, 1)
		assert.Equal(t, domain.Point(8), come[0].Point)
	})

	t.Run("Odds off on come-out are returned", func(t *testing.T) {
		l := ledger.New(100)
		come, err := l.PlaceCome(10, 0)
		require.NoError(t, err)
		_, err = l.Settle(6, 4, true)
		require.NoError(t, err)
		require.NoError(t, l.AttachOdds(come.ID, 10))
		assert.Equal(t, int64(80), l.Bankroll())

		// come-out seven: flat bet loses, odds stake comes back
		out, err := l.Settle(7, domain.PointOff, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, domain.OutcomeLose, out[0].Outcome)
		assert.Equal(t, int64(10), out[0].Credit)
		assert.Equal(t, int64(90), l.Bankroll())
	})

	t.Run("Odds off on come-out win without payout", func(t *testing.T) {
		l := ledger.New(100)
		come, err := l.PlaceCome(10, 0)
		require.NoError(t, err)
		_, err = l.Settle(6, 4, true)
		require.NoError(t, err)
		require.NoError(t, l.AttachOdds(come.ID, 10))

		out, err := l.Settle(6, domain.PointOff, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(20+10), out[0].Credit)
		assert.Equal(t, int64(110), l.Bankroll())
	})
}

func TestLedger_Invariants(t *testing.T) {
	t.Run("Odds without parent", func(t *testing.T) {
		l := ledger.New(100)
		err := l.AttachOdds(42, 10)
		assert.ErrorIs(t, err, domain.ErrInvariant)
	})

	t.Run("Odds before point", func(t *testing.T) {
		l := ledger.New(100)
		bet, err := l.PlaceLine(10, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, l.AttachOdds(bet.ID, 10), domain.ErrInvariant)
	})

	t.Run("Odds twice", func(t *testing.T) {
		l, bet := lineOn(t, 100, 10, 4)
		require.NoError(t, l.AttachOdds(bet.ID, 10))
		assert.ErrorIs(t, l.AttachOdds(bet.ID, 10), domain.ErrInvariant)
	})

	t.Run("Second line bet", func(t *testing.T) {
		l := ledger.New(100)
		_, err := l.PlaceLine(10, 0)
		require.NoError(t, err)
		_, err = l.PlaceLine(10, 0)
		assert.ErrorIs(t, err, domain.ErrInvariant)
	})

	t.Run("Over-bet", func(t *testing.T) {
		l := ledger.New(8)
		_, err := l.PlaceLine(10, 0)
		var inv *domain.InvariantError
		assert.ErrorAs(t, err, &inv)
		assert.Equal(t, int64(8), l.Bankroll(), "failed placement leaves the bankroll untouched")
	})

	t.Run("Sub-point collision", func(t *testing.T) {
		l := ledger.New(100)
		_, err := l.PlaceCome(5, 0)
		require.NoError(t, err)
		_, err = l.PlaceCome(5, 0)
		require.NoError(t, err)

		_, err = l.Settle(9, 4, true)
		assert.ErrorIs(t, err, domain.ErrInvariant)
		assert.Equal(t, int64(90), l.Bankroll())
	})

	t.Run("Line bet out of sync with table", func(t *testing.T) {
		l, _ := lineOn(t, 100, 10, 6)
		_, err := l.Settle(8, 5, true)
		assert.ErrorIs(t, err, domain.ErrInvariant)
	})
}
