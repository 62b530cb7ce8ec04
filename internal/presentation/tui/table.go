package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/crapsim/pkg/domain"
)

// QuantileTable renders a report's quantiles as a markdown document.
func QuantileTable(r *domain.Report) string {
	var b strings.Builder

	title := r.Label
	if title == "" {
		title = r.ID
	}
	fmt.Fprintf(&b, "## %s\n\n", title)
	sc := r.Scenario
	fmt.Fprintf(&b, "%d trials, bankroll %d, min bet %d, odds %dx", len(r.Trials), sc.InitialBankroll, sc.MinBet, sc.OddsMultiple)
	if sc.GrowBets {
		b.WriteString(", growing bets")
	}
	if sc.GrowOdds {
		b.WriteString(", growing odds")
	}
	if sc.OddsOffWithoutPoint {
		b.WriteString(", come odds off on come-out")
	}
	fmt.Fprintf(&b, ". Seed `%d`, %s.\n\n", r.Seed, r.Elapsed.Round(time.Millisecond))

	b.WriteString("| quantile | rolls | max bankroll |\n")
	b.WriteString("|---:|---:|---:|\n")
	for i, f := range r.Quantiles.Fractions {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", fraction(f), number(at(r.Quantiles.Rolls, i)), number(at(r.Quantiles.MaxBankroll, i)))
	}
	if n := truncated(r.Trials); n > 0 {
		fmt.Fprintf(&b, "\n%d trials hit the roll cap before ruin.\n", n)
	}
	return b.String()
}

// CompareTable renders the value of both metrics at fraction f, one row per report.
func CompareTable(reports []*domain.Report, f float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Comparison at %s\n\n", fraction(f))
	b.WriteString("| scenario | rolls | max bankroll |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, r := range reports {
		rolls, _ := r.Quantiles.At(domain.MetricRolls, f)
		peak, _ := r.Quantiles.At(domain.MetricMaxBankroll, f)
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Label, number(rolls), number(peak))
	}
	return b.String()
}

func fraction(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/100, 'f', -1, 64) + "%"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func truncated(trials []domain.TrialResult) int {
	n := 0
	for _, t := range trials {
		if t.Truncated {
			n++
		}
	}
	return n
}
