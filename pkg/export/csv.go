// Package export writes simulation results as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aretw0/crapsim/pkg/domain"
)

// TrialHeader is the column layout of per-trial exports.
var TrialHeader = []string{"label", "trial", "rolls", "max_bankroll", "final_bankroll", "truncated"}

// QuantileHeader is the column layout of quantile exports.
var QuantileHeader = []string{"label", "metric", "fraction", "value"}

// WriteTrials writes one row per trial, preceded by TrialHeader when header is set.
func WriteTrials(w io.Writer, label string, trials []domain.TrialResult, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(TrialHeader); err != nil {
			return err
		}
	}
	for _, t := range trials {
		row := []string{
			label,
			strconv.Itoa(t.Trial),
			strconv.Itoa(t.Rolls),
			strconv.FormatInt(t.MaxBankroll, 10),
			strconv.FormatInt(t.FinalBankroll, 10),
			strconv.FormatBool(t.Truncated),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteQuantiles writes every metric quantile of every report.
func WriteQuantiles(w io.Writer, reports ...*domain.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(QuantileHeader); err != nil {
		return err
	}
	for _, r := range reports {
		q := r.Quantiles
		for _, metric := range []string{domain.MetricRolls, domain.MetricMaxBankroll} {
			for _, f := range q.Fractions {
				v, _ := q.At(metric, f)
				row := []string{
					r.Label,
					metric,
					strconv.FormatFloat(f, 'f', -1, 64),
					strconv.FormatFloat(v, 'f', -1, 64),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendTrials appends a report's trials to the CSV file at path, creating
// it (and its directory) if needed. The header is written only to an empty
// file, so several scenarios can share one export.
func AppendTrials(path string, report *domain.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open export file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat export file: %w", err)
	}

	if err := WriteTrials(f, report.Label, report.Trials, info.Size() == 0); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
