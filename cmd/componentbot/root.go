package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "componentbot",
	Short: "componentbot is a Discord bot template demonstrating message components",
	Long: `componentbot is a minimal Discord bot template. It registers a small
set of slash commands (/help, /start) and demonstrates interactive
message components: a dropdown that attaches buttons, and buttons that
open a modal whose input accumulates into the message text.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
}
