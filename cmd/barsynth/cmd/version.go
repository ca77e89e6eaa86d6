package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the barsynth CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "barsynth version %s\n", version)
		fmt.Fprintln(out, "Deterministic synthetic OHLCV bars")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
