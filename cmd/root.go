package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/edi-build/edi/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "edi",
	Short: "Embedded development infrastructure",
	Long: `edi builds and configures Debian based images and containers.

A project is described by a templated base configuration file that can be
refined without editing it:
  - configuration/overlay/<name>.global.<ext> for the environment
  - configuration/overlay/<name>.<hostname>.<ext> for the machine
  - configuration/overlay/<name>.<user>.<ext> for the person`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
