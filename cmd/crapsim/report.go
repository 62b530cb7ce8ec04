package main

import (
	"github.com/aretw0/crapsim/internal/cli"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [id]",
	Short: "Show a stored report, or list stored reports",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{
			Store:  storeOptions(cmd),
			Output: cmd.OutOrStdout(),
		}
		if len(args) == 0 {
			return cli.ListReports(cmd.Context(), opts, logger)
		}
		return cli.ShowReport(cmd.Context(), args[0], opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
