// Package cli provides the command-line interface for the sealedgen tool.
package cli

import (
	"github.com/spf13/cobra"
)

// Execute creates and runs the root command.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   "sealedgen",
		Short: "Derive JSON codecs for sealed interface families",
	}

	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd.Execute()
}
