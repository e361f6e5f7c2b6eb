package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uleam/dictado/internal/database"
	"github.com/uleam/dictado/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the local database schema",
	Long: `Manage the local Dictado database.

Available subcommands:
  up      - Create or update the record collections
  reset   - Clear all transcripts, notifications and settings`,
}

// migrateUpCmd creates or updates the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the record collections",
	Long: `Run auto migration for the transcript, notification and setting
collections, bringing the schema up to date.`,
	RunE: runMigrateUp,
}

// migrateResetCmd clears all collections
var migrateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all stored records",
	Long: `Delete every transcript, notification and setting.

Intended for test and reset use. The job pipeline never performs this
operation.`,
	RunE: runMigrateReset,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateResetCmd)

	migrateResetCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
}

func openDatabase() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
	return nil
}

func runMigrateReset(cmd *cobra.Command, args []string) error {
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		return fmt.Errorf("refusing to clear all records without --yes")
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		return err
	}
	if err := db.Reset(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "All records cleared")
	return nil
}
