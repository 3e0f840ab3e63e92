package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strichware/bardec/internal/version"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bardec %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
