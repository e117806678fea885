package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/viewmark/viewmark/config"
	sqlmigrations "github.com/viewmark/viewmark/migrations"
	"github.com/viewmark/viewmark/pkg/migrations"
	"github.com/viewmark/viewmark/pkg/utils"
)

const migrationTimeout = 5 * time.Minute

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrations(cmd.Context(), func(ctx context.Context, run migrationRunner) error {
				return run.down(ctx, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrations(cmd.Context(), func(ctx context.Context, run migrationRunner) error {
					return run.up(ctx)
				})
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrations(cmd.Context(), func(ctx context.Context, run migrationRunner) error {
					version, dirty, err := run.version(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

type migrationRunner struct {
	up      func(ctx context.Context) error
	down    func(ctx context.Context, steps int) error
	version func(ctx context.Context) (uint, bool, error)
}

// withMigrations opens the database from the environment. MIGRATIONS_DIR
// switches from the embedded SQL files to a directory on disk.
func withMigrations(parent context.Context, fn func(context.Context, migrationRunner) error) error {
	db, err := config.NewDatabase(logger, &config.DBConfig{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB instance: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err)
		}
	}()

	cfg := migrations.Config{Logger: logger, FS: sqlmigrations.FS}
	if dir := utils.GetEnvTrimmed("MIGRATIONS_DIR"); dir != "" {
		cfg = migrations.Config{Logger: logger, Dir: dir}
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, migrationTimeout)
	defer cancel()

	return fn(ctx, migrationRunner{
		up:      func(ctx context.Context) error { return migrations.Up(ctx, sqlDB, cfg) },
		down:    func(ctx context.Context, steps int) error { return migrations.Down(ctx, sqlDB, cfg, steps) },
		version: func(ctx context.Context) (uint, bool, error) { return migrations.Version(ctx, sqlDB, cfg) },
	})
}
