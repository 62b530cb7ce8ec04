package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/crapsim/internal/cli"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario-file|dir>",
	Short: "Play a batch of scenarios and compare them side by side",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		at, _ := cmd.Flags().GetFloat64Slice("at")
		_, err := cli.Compare(ctx, runOptions(cmd, args), logger, at...)
		return err
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addScenarioFlags(compareCmd)
	compareCmd.Flags().Float64Slice("at", []float64{0.5}, "Quantile fractions to compare at")
}
