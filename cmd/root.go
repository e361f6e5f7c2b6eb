package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uleam/dictado/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dictado",
	Short: "Voice dictation and transcription API server",
	Long: `Dictado - a voice dictation backend

Captured speech is uploaded to an external transcription service, the
asynchronous job is tracked to completion, and results are stored locally
together with user notifications and adjustable settings.

Features:
  • Asynchronous transcription job pipeline with polling and cancellation
  • Durable transcript history with delete support
  • Notification feed with read tracking
  • Key/value application settings`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && cmd.Name() == "version" {
		return // Version command doesn't need config
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
