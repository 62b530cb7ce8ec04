package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/crapsim/internal/cli"
	"github.com/spf13/cobra"
)

// scenarioFlags maps command-line flags onto scenario keys.
var scenarioFlags = map[string]string{
	"min-bet":   "min_bet",
	"odds":      "odds_multiple",
	"bankroll":  "initial_bankroll",
	"trials":    "n_trials",
	"grow-bets": "grow_bets",
	"grow-odds": "grow_odds",
	"odds-off":  "odds_off_without_point",
	"seed":      "rng_seed",
	"label":     "label",
	"max-rolls": "max_rolls",
	"max-come":  "max_come_bets",
	"schedule":  "odds_schedule",
}

// overrides collects the scenario flags the user actually set.
func overrides(cmd *cobra.Command) map[string]any {
	out := map[string]any{}
	for flag, key := range scenarioFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		out[key] = f.Value.String()
	}
	return out
}

func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	file, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("file") && len(args) > 0 {
		file = args[0]
	}
	csv, _ := cmd.Flags().GetString("csv")
	quantileCSV, _ := cmd.Flags().GetString("quantile-csv")
	workers, _ := cmd.Flags().GetInt("workers")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return cli.RunOptions{
		File:        file,
		Overrides:   overrides(cmd),
		CSV:         csv,
		QuantileCSV: quantileCSV,
		Workers:     workers,
		Debug:       debug,
		Quiet:       quiet,
		Store:       storeOptions(cmd),
		Output:      cmd.OutOrStdout(),
	}
}

var runCmd = &cobra.Command{
	Use:   "run [scenario-file|dir]",
	Short: "Play scenarios and print their quantiles",
	Long: `Plays the default scenario, every scenario in a YAML/JSON file, or every
scenario document in a directory (YAML, JSON or Markdown frontmatter), and
prints quantiles of rolls survived and peak bankroll. Flags override the
matching keys of every scenario.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err := cli.Run(ctx, runOptions(cmd, args), logger)
		return err
	},
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Scenario file (YAML or JSON) or a directory of scenario documents")
	cmd.Flags().Int64("min-bet", 5, "Table minimum bet")
	cmd.Flags().Int("odds", 3, "Maximum odds multiple (the ladder schedule stops at 3x; use --schedule flat for more)")
	cmd.Flags().Int64("bankroll", 300, "Initial bankroll")
	cmd.Flags().IntP("trials", "n", 1000, "Number of sessions to play")
	cmd.Flags().Bool("grow-bets", false, "Grow the line and come bets with the bankroll")
	cmd.Flags().Bool("grow-odds", false, "Grow odds bets with the line bet")
	cmd.Flags().Bool("odds-off", false, "Come odds are off when no point is established")
	cmd.Flags().Uint64("seed", 0, "RNG seed for a reproducible run")
	cmd.Flags().String("label", "", "Scenario label")
	cmd.Flags().Int("max-rolls", 0, "Stop a session after this many rolls (0 = play to ruin)")
	cmd.Flags().Int("max-come", 2, "Come bets kept working at once")
	cmd.Flags().String("schedule", "ladder", "Odds schedule: ladder or flat")
	cmd.Flags().String("csv", "", "Append per-trial results to this CSV file")
	cmd.Flags().String("quantile-csv", "", "Write quantiles to this CSV file")
	cmd.Flags().IntP("workers", "w", 0, "Trials played at once (0 = one per CPU)")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and progress lines")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addScenarioFlags(runCmd)
}
