package observability

import (
	"errors"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crapsim"

// Metrics holds the simulation collectors.
type Metrics struct {
	Trials      *prometheus.CounterVec
	Rolls       prometheus.Counter
	Placements  *prometheus.CounterVec
	Settlements *prometheus.CounterVec
	Defects     prometheus.Counter

	TrialRolls       prometheus.Histogram
	TrialMaxBankroll prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trials_total",
				Help:      "Trials finished, by how they ended.",
			},
			[]string{"end"},
		),
		Rolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Dice rolls played.",
		}),
		Placements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "placements_total",
				Help:      "Bets placed, by kind.",
			},
			[]string{"kind"},
		),
		Settlements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settlements_total",
				Help:      "Bet resolutions, by outcome.",
			},
			[]string{"outcome"},
		),
		Defects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invariant_errors_total",
			Help:      "Trials aborted by a broken table invariant.",
		}),
		TrialRolls: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_rolls",
			Help:      "Rolls survived per trial.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		}),
		TrialMaxBankroll: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_max_bankroll",
			Help:      "Peak bankroll per trial.",
			Buckets:   prometheus.ExponentialBuckets(100, 1.5, 14),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Trials, m.Rolls, m.Placements, m.Settlements, m.Defects,
			m.TrialRolls, m.TrialMaxBankroll,
		)
	}
	return m
}

// Hooks returns the domain hooks feeding these metrics.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnPlace: func(e domain.PlacementEvent) {
			kind := string(e.Kind)
			if e.Odds {
				kind += "_odds"
			}
			m.Placements.WithLabelValues(kind).Inc()
		},
		OnRoll: func(e domain.RollEvent) {
			m.Rolls.Inc()
			for _, s := range e.Settlements {
				m.Settlements.WithLabelValues(string(s.Outcome)).Inc()
			}
		},
		OnTrialEnd: func(r domain.TrialResult) {
			end := "ruin"
			if r.Truncated {
				end = "truncated"
			}
			m.Trials.WithLabelValues(end).Inc()
			m.TrialRolls.Observe(float64(r.Rolls))
			m.TrialMaxBankroll.Observe(float64(r.MaxBankroll))
		},
		OnDefect: func(err error) {
			if errors.Is(err, domain.ErrInvariant) {
				m.Defects.Inc()
			}
		},
	}
}
