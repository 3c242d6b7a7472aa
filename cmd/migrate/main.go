package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/repository/postgres"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the budgetbook database schema",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL (defaults to $DATABASE_URL)")

	withMigrator := func(run func(*postgres.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return fmt.Errorf("database url is required")
			}
			mg, err := postgres.NewMigrator(databaseURL)
			if err != nil {
				return err
			}
			defer mg.Close()
			return run(mg)
		}
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(mg *postgres.Migrator) error {
			if err := mg.Up(); err != nil {
				return err
			}
			return logVersion(mg)
		}),
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(mg *postgres.Migrator) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			if err := mg.Down(steps); err != nil {
				return err
			}
			return logVersion(mg)
		}),
	}
	downCmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(logVersion),
	}

	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
	return rootCmd
}

func logVersion(mg *postgres.Migrator) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
	return nil
}
