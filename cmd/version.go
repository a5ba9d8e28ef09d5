package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edi-build/edi/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the edi version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "edi %s\n", app.Default.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
