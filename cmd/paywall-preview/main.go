// Paywall-preview is the design-time companion for paywall configurations.
//
// It loads a paywall configuration file and runs it through the full
// rendering engine: interactively in the terminal, as a one-shot frame for
// golden-file review, or as a live-preview server that mirrors the paywall
// to design tools over WebSocket.
//
// Usage:
//
//	paywall-preview [command] [flags]
//
// Running without arguments launches the interactive player.
// See 'paywall-preview --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skylineapps/paywallkit/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paywall-preview",
	Short: "Paywall Configuration Preview Utility",
	Long: `A standalone utility for previewing paywall configurations.

Loads a paywall configuration file and runs it through the rendering
engine: interactively in the terminal, as a one-shot rendered frame, or
as a live-preview server for design tools.

If no command is specified, the interactive player will launch automatically.`,
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the player when no subcommand provided
		return runPlayer(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paywall-preview %s (commit: %s)\n", version.Version, version.Commit)
	},
}
