// Package quantile summarises metric series at fixed fractions.
//
// The default method is nearest rank: sort ascending and take the value at
// index round(f*(n-1)), rounding halves away from zero. Linear interpolation
// between the two neighbouring ranks is also available. Both are monotonic
// non-decreasing in f, return the minimum at f=0 and the maximum at f=1.
package quantile

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/aretw0/crapsim/pkg/domain"
)

var (
	// ErrEmpty is returned when a series has no values.
	ErrEmpty = errors.New("empty series")
	// ErrFraction is returned for a fraction outside [0, 1].
	ErrFraction = errors.New("fraction out of range")
)

// Method selects how a fraction maps onto the sorted series.
type Method string

const (
	Nearest Method = "nearest"
	Linear  Method = "linear"
)

// DefaultFractions returns 0, 0.1, ..., 1.0.
func DefaultFractions() []float64 {
	out := make([]float64, 11)
	for i := range out {
		out[i] = float64(i) / 10
	}
	return out
}

// Compute returns the value of values at each fraction.
// values is not modified.
func Compute(values []float64, fractions []float64, method Method) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	for _, f := range fractions {
		if f < 0 || f > 1 || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: %v", ErrFraction, f)
		}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	last := float64(len(sorted) - 1)

	out := make([]float64, len(fractions))
	for i, f := range fractions {
		pos := f * last
		switch method {
		case Linear:
			lo := math.Floor(pos)
			hi := math.Ceil(pos)
			w := pos - lo
			out[i] = sorted[int(lo)]*(1-w) + sorted[int(hi)]*w
		case Nearest, "":
			out[i] = sorted[int(math.Round(pos))]
		default:
			return nil, fmt.Errorf("unknown quantile method %q", method)
		}
	}
	return out, nil
}

// Summarize computes both metric series of a scenario at the given fractions.
func Summarize(results []domain.TrialResult, fractions []float64, method Method) (domain.QuantileReport, error) {
	if method == "" {
		method = Nearest
	}
	rolls := make([]float64, len(results))
	peaks := make([]float64, len(results))
	for i, r := range results {
		rolls[i] = float64(r.Rolls)
		peaks[i] = float64(r.MaxBankroll)
	}

	rq, err := Compute(rolls, fractions, method)
	if err != nil {
		return domain.QuantileReport{}, fmt.Errorf("%s: %w", domain.MetricRolls, err)
	}
	pq, err := Compute(peaks, fractions, method)
	if err != nil {
		return domain.QuantileReport{}, fmt.Errorf("%s: %w", domain.MetricMaxBankroll, err)
	}
	return domain.QuantileReport{
		Method:      string(method),
		Fractions:   slices.Clone(fractions),
		Rolls:       rq,
		MaxBankroll: pq,
	}, nil
}
