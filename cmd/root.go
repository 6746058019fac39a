package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fibula",
	Short:         "fibula: merchant price catalog for Fibula items",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // Execute prints the error once
	Long: `fibula loads the item catalog (weapons, equipment, tools, food) from
~/.fibula/content/, validates which merchants buy each item and where, and
answers merchant/location lookups across all categories.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErr("", err.Error())
		os.Exit(1)
	}
}
