package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/crapsim"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of crapsim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "crapsim version %s\n", strings.TrimSpace(crapsim.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
