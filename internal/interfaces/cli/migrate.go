package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/database/postgres"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
)

func newMigrateCmd(cliCtx *CLIContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		newMigrateUpCmd(cliCtx),
		newMigrateDownCmd(cliCtx),
		newMigrateStatusCmd(cliCtx),
	)
	return cmd
}

func migrationTargets(cliCtx *CLIContext) (dbURL, path string, err error) {
	if cliCtx.Config == nil {
		return "", "", fmt.Errorf("a configuration file is required for migrations")
	}
	return cliCtx.Config.Database.DSN(), cliCtx.Config.Migrations.Path, nil
}

func newMigrateUpCmd(cliCtx *CLIContext) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, path, err := migrationTargets(cliCtx)
			if err != nil {
				return err
			}
			if err := postgres.RunMigrations(dbURL, path); err != nil {
				return err
			}
			cliCtx.Logger.Info("migrations applied", logging.String("path", path))
			return nil
		},
	}
}

func newMigrateDownCmd(cliCtx *CLIContext) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, path, err := migrationTargets(cliCtx)
			if err != nil {
				return err
			}
			if err := postgres.RollbackMigration(dbURL, path, steps); err != nil {
				return err
			}
			cliCtx.Logger.Info("migrations rolled back", logging.Int("steps", steps))
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newMigrateStatusCmd(cliCtx *CLIContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, path, err := migrationTargets(cliCtx)
			if err != nil {
				return err
			}
			version, dirty, err := postgres.MigrationStatus(dbURL, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d\ndirty: %v\n", version, dirty)
			return nil
		},
	}
}
