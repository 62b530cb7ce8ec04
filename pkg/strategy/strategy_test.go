package strategy_test

import (
	"testing"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() domain.Scenario {
	return domain.Scenario{
		MinBet:          5,
		OddsMultiple:    3,
		InitialBankroll: 200,
		Trials:          1,
		MaxComeBets:     2,
	}
}

func newStrategy(t *testing.T, sc domain.Scenario, opts ...strategy.Option) *strategy.Strategy {
	t.Helper()
	st, err := strategy.New(sc, opts...)
	require.NoError(t, err)
	return st
}

func TestPlan_ComeOut(t *testing.T) {
	st := newStrategy(t, scenario())

	plan := st.Plan(domain.Snapshot{Bankroll: 200})
	require.Len(t, plan, 1)
	assert.Equal(t, strategy.Placement{Kind: domain.KindLine, Amount: 5}, plan[0])

	t.Run("Nothing below the minimum", func(t *testing.T) {
		assert.Empty(t, st.Plan(domain.Snapshot{Bankroll: 4}))
	})

	t.Run("No second line bet", func(t *testing.T) {
		snap := domain.Snapshot{
			Bankroll: 195,
			Bets:     []domain.Bet{{ID: 1, Kind: domain.KindLine, Amount: 5}},
		}
		assert.Empty(t, st.Plan(snap))
	})
}

func TestPlan_PointOn(t *testing.T) {
	st := newStrategy(t, scenario())
	snap := domain.Snapshot{
		Bankroll: 195,
		Point:    6,
		Bets:     []domain.Bet{{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 6}},
	}

	plan := st.Plan(snap)
	require.Len(t, plan, 2)
	assert.Equal(t, strategy.Placement{Kind: domain.KindCome, Amount: 5}, plan[0])
	assert.Equal(t, strategy.Placement{Kind: domain.KindLine, Odds: true, BetID: 1, Amount: 15}, plan[1])

	t.Run("One come bet waits at a time", func(t *testing.T) {
		s := snap
		s.Bets = append([]domain.Bet{}, snap.Bets...)
		s.Bets[0].Odds = &domain.OddsBet{Amount: 15}
		s.Bets = append(s.Bets, domain.Bet{ID: 2, Kind: domain.KindCome, Amount: 5})
		assert.Empty(t, st.Plan(s))
	})

	t.Run("Come bets capped", func(t *testing.T) {
		s := domain.Snapshot{
			Bankroll: 150,
			Point:    6,
			Bets: []domain.Bet{
				{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 6, Odds: &domain.OddsBet{Amount: 15}},
				{ID: 2, Kind: domain.KindCome, Amount: 5, Point: 4, Odds: &domain.OddsBet{Amount: 5}},
				{ID: 3, Kind: domain.KindCome, Amount: 5, Point: 9, Odds: &domain.OddsBet{Amount: 10}},
			},
		}
		assert.Empty(t, st.Plan(s))
	})
}

func TestPlan_OddsLadder(t *testing.T) {
	st := newStrategy(t, scenario())
	tests := map[domain.Point]int64{4: 5, 10: 5, 5: 10, 9: 10, 6: 15, 8: 15}
	for p, want := range tests {
		bet := domain.Bet{ID: 1, Kind: domain.KindLine, Amount: 5, Point: p}
		assert.Equal(t, want, st.OddsAmount(bet, 200, 200), "point %d", p)
	}

	t.Run("Flat schedule", func(t *testing.T) {
		sc := scenario()
		sc.OddsSchedule = domain.ScheduleFlat
		flat := newStrategy(t, sc)
		bet := domain.Bet{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 4}
		assert.Equal(t, int64(15), flat.OddsAmount(bet, 200, 200))
	})

	t.Run("No odds", func(t *testing.T) {
		sc := scenario()
		sc.OddsMultiple = 0
		none := newStrategy(t, sc)
		bet := domain.Bet{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 6}
		assert.Zero(t, none.OddsAmount(bet, 200, 200))
	})
}

func TestPlan_NeverOverBets(t *testing.T) {
	st := newStrategy(t, scenario())

	t.Run("Odds skipped when increment unaffordable", func(t *testing.T) {
		snap := domain.Snapshot{
			Bankroll: 7,
			Point:    6,
			Bets:     []domain.Bet{{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 6}},
		}
		plan := st.Plan(snap)
		require.Len(t, plan, 1)
		assert.Equal(t, domain.KindCome, plan[0].Kind)
	})

	t.Run("Odds rounded down to payout increment", func(t *testing.T) {
		bet := domain.Bet{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 9}
		assert.Equal(t, int64(6), st.OddsAmount(bet, 7, 7))
	})

	t.Run("Total never exceeds bankroll", func(t *testing.T) {
		for bankroll := int64(0); bankroll <= 60; bankroll++ {
			snap := domain.Snapshot{
				Bankroll: bankroll,
				Point:    8,
				Bets: []domain.Bet{
					{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 8},
					{ID: 2, Kind: domain.KindCome, Amount: 5, Point: 5},
				},
			}
			var total int64
			for _, p := range st.Plan(snap) {
				total += p.Amount
			}
			assert.LessOrEqual(t, total, bankroll, "bankroll %d", bankroll)
		}
	})
}

func TestPlan_OddsOffWithoutPoint(t *testing.T) {
	sc := scenario()
	sc.OddsOffWithoutPoint = true
	st := newStrategy(t, sc)

	snap := domain.Snapshot{
		Bankroll: 190,
		Bets:     []domain.Bet{{ID: 2, Kind: domain.KindCome, Amount: 5, Point: 6}},
	}
	plan := st.Plan(snap)
	require.Len(t, plan, 1, "only the line bet on come-out")
	assert.Equal(t, domain.KindLine, plan[0].Kind)
	assert.False(t, st.ComeOddsWorking(domain.PointOff))
	assert.True(t, st.ComeOddsWorking(5))

	snap.Point = 5
	snap.Bets = append([]domain.Bet{{ID: 3, Kind: domain.KindLine, Amount: 5, Point: 5}}, snap.Bets...)
	plan = st.Plan(snap)
	require.Len(t, plan, 3)
	assert.Equal(t, domain.KindCome, plan[0].Kind)
	assert.Equal(t, 3, plan[1].BetID)
	assert.Equal(t, 2, plan[2].BetID)

	t.Run("Placed right away when the flag is off", func(t *testing.T) {
		eager := newStrategy(t, scenario())
		snap := domain.Snapshot{
			Bankroll: 190,
			Bets:     []domain.Bet{{ID: 2, Kind: domain.KindCome, Amount: 5, Point: 6}},
		}
		plan := eager.Plan(snap)
		require.Len(t, plan, 2)
		assert.True(t, plan[1].Odds)
		assert.True(t, eager.ComeOddsWorking(domain.PointOff))
	})
}

func TestGrowth(t *testing.T) {
	sc := scenario()
	sc.GrowBets = true
	st := newStrategy(t, sc)

	assert.Equal(t, int64(5), st.BaseSize(50))
	assert.Equal(t, int64(10), st.BaseSize(200))
	assert.Equal(t, int64(20), st.BaseSize(450))

	t.Run("Monotonic", func(t *testing.T) {
		prev := int64(0)
		for bankroll := int64(0); bankroll < 5000; bankroll += 7 {
			size := st.BaseSize(bankroll)
			assert.GreaterOrEqual(t, size, prev)
			assert.Zero(t, size%5)
			prev = size
		}
	})

	t.Run("Grow odds uses the grown unit up to the table maximum", func(t *testing.T) {
		sc := scenario()
		sc.GrowOdds = true
		st := newStrategy(t, sc)
		bet := domain.Bet{ID: 1, Kind: domain.KindLine, Amount: 5, Point: 4}
		// grown unit 10 at 1x, below the 3x table maximum of 15
		assert.Equal(t, int64(10), st.OddsAmount(bet, 200, 200))
		bet.Point = 6
		assert.Equal(t, int64(15), st.OddsAmount(bet, 200, 200))
	})

	t.Run("Custom sizer", func(t *testing.T) {
		custom := newStrategy(t, sc, strategy.WithSizer(strategy.SizerFunc(func(b int64) int64 { return b / 4 })))
		assert.Equal(t, int64(50), custom.BaseSize(200))
		assert.Equal(t, int64(5), custom.BaseSize(3))
	})

	t.Run("Flat sizer", func(t *testing.T) {
		flat := newStrategy(t, sc, strategy.WithSizer(strategy.Flat{Unit: 25}))
		assert.Equal(t, int64(25), flat.BaseSize(10_000))
	})
}

func TestSchedule(t *testing.T) {
	_, err := strategy.Schedule("martingale", 3)
	assert.Error(t, err)

	ladder, err := strategy.Schedule("", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, ladder.Multiple(4))
	assert.Equal(t, 2, ladder.Multiple(5))
	assert.Equal(t, 2, ladder.Multiple(6), "capped at the multiple")
	assert.Zero(t, ladder.Multiple(7))

	_, err = strategy.New(domain.Scenario{MinBet: 5, OddsSchedule: "bogus"})
	assert.Error(t, err)
}

func TestMaxMultiple(t *testing.T) {
	sc := scenario()
	sc.OddsMultiple = 10
	assert.Equal(t, strategy.LadderTop, strategy.MaxMultiple(sc))

	sc.OddsSchedule = domain.ScheduleFlat
	assert.Equal(t, 10, strategy.MaxMultiple(sc))

	sc.OddsSchedule = ""
	sc.OddsMultiple = 2
	assert.Equal(t, 2, strategy.MaxMultiple(sc))
}
