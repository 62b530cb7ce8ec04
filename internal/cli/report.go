package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/crapsim/internal/presentation/tui"
)

// ShowReport prints a stored report's quantile table.
func ShowReport(ctx context.Context, id string, opts RunOptions, logger *slog.Logger) error {
	sim, closeFn, err := NewSimulator(opts.Store, logger, false)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := sim.Report(ctx, id)
	if err != nil {
		return fmt.Errorf("report %q: %w", id, err)
	}
	fmt.Fprint(opts.output(), opts.render(tui.QuantileTable(report)))
	return nil
}

// ListReports prints the IDs of stored reports, one per line.
func ListReports(ctx context.Context, opts RunOptions, logger *slog.Logger) error {
	sim, closeFn, err := NewSimulator(opts.Store, logger, false)
	if err != nil {
		return err
	}
	defer closeFn()

	ids, err := sim.Reports(ctx)
	if err != nil {
		return err
	}
	return printLines(opts.output(), ids)
}

func printLines(out io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return err
		}
	}
	return nil
}
