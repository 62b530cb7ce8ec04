package domain_test

import (
	"testing"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestOddsPayout(t *testing.T) {
	tests := []struct {
		point  domain.Point
		amount int64
		want   int64
	}{
		{4, 10, 20},
		{10, 5, 10},
		{5, 10, 15},
		{9, 20, 30},
		{6, 15, 18},
		{8, 25, 30},
		{5, 5, 7}, // odd stake on 5/9 rounds down
		{6, 7, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.OddsPayout(tt.point, tt.amount), "point %d amount %d", tt.point, tt.amount)
	}
	assert.Zero(t, domain.OddsPayout(7, 10))
}

func TestOddsIncrement(t *testing.T) {
	assert.Equal(t, int64(1), domain.OddsIncrement(4))
	assert.Equal(t, int64(1), domain.OddsIncrement(10))
	assert.Equal(t, int64(2), domain.OddsIncrement(5))
	assert.Equal(t, int64(2), domain.OddsIncrement(9))
	assert.Equal(t, int64(5), domain.OddsIncrement(6))
	assert.Equal(t, int64(5), domain.OddsIncrement(8))
}

func TestPoint(t *testing.T) {
	assert.False(t, domain.PointOff.IsOn())
	assert.Equal(t, "off", domain.PointOff.String())
	assert.Equal(t, "6", domain.Point(6).String())
	for _, p := range domain.Points {
		assert.True(t, p.Valid())
		assert.True(t, domain.IsPointNumber(int(p)))
	}
	for _, sum := range []int{2, 3, 7, 11, 12} {
		assert.False(t, domain.IsPointNumber(sum), "sum %d", sum)
	}
}

func TestHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.Hooks{OnTrialEnd: func(domain.TrialResult) { calls = append(calls, "a") }}
	b := domain.Hooks{
		OnTrialEnd: func(domain.TrialResult) { calls = append(calls, "b") },
		OnRoll:     func(domain.RollEvent) { calls = append(calls, "roll") },
	}

	merged := a.Merge(b)
	merged.OnTrialEnd(domain.TrialResult{})
	merged.OnRoll(domain.RollEvent{})
	assert.Equal(t, []string{"a", "b", "roll"}, calls)
	assert.Nil(t, merged.OnPlace)
}

func TestInvariantError(t *testing.T) {
	err := domain.Invariantf("odds on bet %d without parent", 3)
	err.Trial, err.Roll = 2, 17

	assert.ErrorIs(t, err, domain.ErrInvariant)
	assert.Contains(t, err.Error(), "trial 2 roll 17")
	assert.Contains(t, err.Error(), "without parent")
}

func TestQuantileReport_ByMetric(t *testing.T) {
	q := domain.QuantileReport{
		Fractions:   []float64{0, 0.5, 1},
		Rolls:       []float64{3, 40, 900},
		MaxBankroll: []float64{200, 230, 1200},
	}
	m := q.ByMetric()
	assert.Equal(t, 40.0, m[domain.MetricRolls][0.5])
	assert.Equal(t, 1200.0, m[domain.MetricMaxBankroll][1])

	v, ok := q.At(domain.MetricMaxBankroll, 0)
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)
	_, ok = q.At("unknown", 0)
	assert.False(t, ok)
}
