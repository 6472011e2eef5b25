package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "ryval",
	Short: "Ryval verifies clock-synchronous ready/valid devices against " +
		"reference models.",
	Long: `Ryval verifies clock-synchronous ready/valid devices against ` +
		`reference models. A run resets the device, replays directed edge ` +
		`cases, applies randomized traffic, and drains the device, scoring ` +
		`every output transfer.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// Environment files supply defaults for the RYVAL_* variables.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
