package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/crapsim"
	"github.com/aretw0/crapsim/internal/presentation/tui"
	loamadapter "github.com/aretw0/crapsim/pkg/adapters/loam"
	"github.com/aretw0/crapsim/pkg/config"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/export"
)

// RunOptions contains all the configuration for the run and compare commands.
type RunOptions struct {
	File        string         // scenario file or directory; empty plays the default scenario
	Overrides   map[string]any // scenario keys set on the command line
	CSV         string         // append per-trial rows here
	QuantileCSV string         // write quantile rows here
	Workers     int
	Debug       bool
	Quiet       bool // skip the banner
	Store       StoreOptions
	Output      io.Writer
	Renderer    tui.Renderer // defaults to tui.NewRenderer(Output)
}

func (o *RunOptions) output() io.Writer {
	if o.Output == nil {
		return os.Stdout
	}
	return o.Output
}

func (o *RunOptions) render(markdown string) string {
	r := o.Renderer
	if r == nil {
		r = tui.NewRenderer(o.output())
	}
	out, err := r(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// LoadScenarios reads file (or takes the default scenario) and applies the
// overrides to every scenario it holds. A directory is read as a Loam
// repository of scenario documents.
func LoadScenarios(ctx context.Context, file string, overrides map[string]any) ([]domain.Scenario, error) {
	scenarios, err := readScenarios(ctx, file)
	if err != nil {
		return nil, err
	}

	if len(overrides) == 0 {
		return scenarios, nil
	}
	for i, sc := range scenarios {
		out, err := config.Decode(sc, overrides)
		if err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
		if err := config.Validate(out); err != nil {
			return nil, err
		}
		scenarios[i] = out
	}
	return scenarios, nil
}

func readScenarios(ctx context.Context, file string) ([]domain.Scenario, error) {
	if file == "" {
		sc := config.Default()
		sc.Label = "default"
		return []domain.Scenario{sc}, nil
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	if !info.IsDir() {
		return config.Load(file)
	}

	loader, err := loamadapter.Open(file)
	if err != nil {
		return nil, err
	}
	return loader.Scenarios(ctx)
}

// Run plays every scenario, prints its quantile table and writes the
// requested exports.
func Run(ctx context.Context, opts RunOptions, logger *slog.Logger) ([]*domain.Report, error) {
	reports, err := simulateAll(ctx, opts, logger, func(r *domain.Report) {
		fmt.Fprint(opts.output(), opts.render(tui.QuantileTable(r)))
	})
	if err != nil {
		return reports, err
	}
	return reports, writeQuantiles(opts.QuantileCSV, reports)
}

// Compare plays every scenario and prints their values side by side at
// each of fractions (the median when none are given).
func Compare(ctx context.Context, opts RunOptions, logger *slog.Logger, fractions ...float64) ([]*domain.Report, error) {
	if len(fractions) == 0 {
		fractions = []float64{0.5}
	}
	reports, err := simulateAll(ctx, opts, logger, nil)
	if err != nil {
		return reports, err
	}
	for _, f := range fractions {
		fmt.Fprint(opts.output(), opts.render(tui.CompareTable(reports, f)))
	}
	return reports, writeQuantiles(opts.QuantileCSV, reports)
}

func simulateAll(ctx context.Context, opts RunOptions, logger *slog.Logger, each func(*domain.Report)) ([]*domain.Report, error) {
	scenarios, err := LoadScenarios(ctx, opts.File, opts.Overrides)
	if err != nil {
		return nil, err
	}

	sim, closeFn, err := NewSimulator(opts.Store, logger, opts.Debug, crapsim.WithWorkers(opts.Workers))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close report store", "error", err)
		}
	}()

	out := opts.output()
	if !opts.Quiet {
		tui.PrintBanner(out)
	}

	reports := make([]*domain.Report, 0, len(scenarios))
	for _, sc := range scenarios {
		if !opts.Quiet {
			printSystemMessage(out, "Playing %q: %d trials...", sc.Label, sc.Trials)
		}
		report, err := sim.Simulate(ctx, sc)
		if err != nil {
			return reports, fmt.Errorf("scenario %q: %w", sc.Label, err)
		}
		reports = append(reports, report)

		if each != nil {
			each(report)
		}
		if opts.CSV != "" {
			if err := export.AppendTrials(opts.CSV, report); err != nil {
				return reports, err
			}
		}
	}
	return reports, nil
}

func writeQuantiles(path string, reports []*domain.Report) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create quantile export: %w", err)
	}
	if err := export.WriteQuantiles(f, reports...); err != nil {
		f.Close()
		return fmt.Errorf("failed to write quantile export: %w", err)
	}
	return f.Close()
}
