package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCommand().Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the back office database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "migrations source URL (defaults to MIGRATIONS_PATH)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(path, func(m *migrate.Migrate) error {
					if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
						return fmt.Errorf("migration up failed: %w", err)
					}
					logger.Get().Info("Migrations applied successfully")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "Roll back the last N migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid step count %q", args[0])
					}
					steps = n
				}
				return withMigrator(path, func(m *migrate.Migrate) error {
					if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
						return fmt.Errorf("migration down failed: %w", err)
					}
					logger.Get().Infof("Rolled back %d migration(s)", steps)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(path, func(m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						logger.Get().Info("No migrations applied")
						return nil
					}
					if err != nil {
						return fmt.Errorf("failed to get version: %w", err)
					}
					logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
					return nil
				})
			},
		},
	)

	return cmd
}

func withMigrator(path string, fn func(*migrate.Migrate) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig := database.NewConfig(cfg)
	if path != "" {
		dbConfig.MigrationsPath = path
	}

	m, err := database.NewMigrator(dbConfig)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	return fn(m)
}
