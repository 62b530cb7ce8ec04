package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/crapsim/internal/cli"
	"github.com/spf13/cobra"
)

var (
	settings cli.Settings
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crapsim",
	Short: "crapsim plays craps sessions to ruin and reports how they went",
	Long: `crapsim simulates a pass-line, come-bet and maximum-odds strategy over
many independent sessions, each played until the bankroll is gone, and reports
quantiles of how many rolls each session lasted and how high its bankroll got.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if settings, err = cli.ParseEnv(); err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		logger = cli.CreateLogger(debug, settings)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// storeOptions merges the store flags of cmd with the environment.
func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	opts := cli.StoreOptions{
		RedisURL:  settings.RedisURL,
		ReportDir: settings.ReportDir,
		Settings:  settings,
	}
	if v, _ := cmd.Flags().GetString("redis-url"); v != "" {
		opts.RedisURL = v
	}
	if v, _ := cmd.Flags().GetString("report-dir"); v != "" {
		opts.ReportDir = v
	}
	return opts
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("redis-url", "", "Keep reports in Redis (overrides CRAPSIM_REDIS_URL)")
	rootCmd.PersistentFlags().String("report-dir", "", "Keep reports as JSON files in this directory (overrides CRAPSIM_REPORT_DIR)")
}
