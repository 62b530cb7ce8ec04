package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Metric names used in quantile reports.
const (
	MetricRolls       = "rolls"
	MetricMaxBankroll = "max_bankroll"
)

// TrialResult is the outcome of one session played to ruin.
type TrialResult struct {
	Trial         int   `json:"trial"`
	Rolls         int   `json:"rolls"`
	MaxBankroll   int64 `json:"max_bankroll"`
	FinalBankroll int64 `json:"final_bankroll"`
	Truncated     bool  `json:"truncated,omitempty"` // stopped by a roll cap, not by ruin
}

// QuantileReport maps quantile fractions to metric values.
// Rolls[i] and MaxBankroll[i] belong to Fractions[i].
type QuantileReport struct {
	Method      string    `json:"method"`
	Fractions   []float64 `json:"fractions"`
	Rolls       []float64 `json:"rolls"`
	MaxBankroll []float64 `json:"max_bankroll"`
}

// ByMetric returns the report as metric name -> fraction -> value.
func (q QuantileReport) ByMetric() map[string]map[float64]float64 {
	out := map[string]map[float64]float64{
		MetricRolls:       make(map[float64]float64, len(q.Fractions)),
		MetricMaxBankroll: make(map[float64]float64, len(q.Fractions)),
	}
	for i, f := range q.Fractions {
		if i < len(q.Rolls) {
			out[MetricRolls][f] = q.Rolls[i]
		}
		if i < len(q.MaxBankroll) {
			out[MetricMaxBankroll][f] = q.MaxBankroll[i]
		}
	}
	return out
}

// At returns the value recorded for a metric at fraction f.
func (q QuantileReport) At(metric string, f float64) (float64, bool) {
	series := q.Rolls
	if metric == MetricMaxBankroll {
		series = q.MaxBankroll
	} else if metric != MetricRolls {
		return 0, false
	}
	for i, frac := range q.Fractions {
		if frac == f && i < len(series) {
			return series[i], true
		}
	}
	return 0, false
}

// Report is a finished scenario: the unit of persistence.
type Report struct {
	ID        string         `json:"id"`
	Label     string         `json:"label,omitempty"`
	Scenario  Scenario       `json:"scenario"`
	Seed      uint64         `json:"seed"`
	Trials    []TrialResult  `json:"trials"`
	Quantiles QuantileReport `json:"quantiles"`
	CreatedAt time.Time      `json:"created_at"`
	Elapsed   time.Duration  `json:"elapsed"`
}

// NewReportID returns a fresh random report identifier.
func NewReportID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	out := *r
	if r.Scenario.Seed != nil {
		seed := *r.Scenario.Seed
		out.Scenario.Seed = &seed
	}
	out.Trials = slices.Clone(r.Trials)
	out.Quantiles.Fractions = slices.Clone(r.Quantiles.Fractions)
	out.Quantiles.Rolls = slices.Clone(r.Quantiles.Rolls)
	out.Quantiles.MaxBankroll = slices.Clone(r.Quantiles.MaxBankroll)
	return &out
}

// ReportSummary is a report without its raw trials.
type ReportSummary struct {
	ID        string         `json:"id"`
	Label     string         `json:"label,omitempty"`
	Scenario  Scenario       `json:"scenario"`
	Seed      uint64         `json:"seed"`
	Trials    int            `json:"n_trials"`
	Truncated int            `json:"truncated,omitempty"`
	Quantiles QuantileReport `json:"quantiles"`
	CreatedAt time.Time      `json:"created_at"`
	Elapsed   string         `json:"elapsed"`
}

// Summary strips the raw trials from r.
func (r *Report) Summary() ReportSummary {
	s := ReportSummary{
		ID:        r.ID,
		Label:     r.Label,
		Scenario:  r.Scenario,
		Seed:      r.Seed,
		Trials:    len(r.Trials),
		Quantiles: r.Quantiles,
		CreatedAt: r.CreatedAt,
		Elapsed:   r.Elapsed.String(),
	}
	for _, t := range r.Trials {
		if t.Truncated {
			s.Truncated++
		}
	}
	return s
}
