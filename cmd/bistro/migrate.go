package main

import (
	"context"
	"fmt"
	"time"

	mongoMigration "bistro/internal/migrations/mongo"
	postgresMigration "bistro/internal/migrations/postgres"
	"bistro/pkg/config"

	"github.com/spf13/cobra"
)

const JobName = "bistro-migrate"

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the schema for the configured storage driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return migrate(ctx, config.Load(JobName))
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall migration timeout")
	return cmd
}

func migrate(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		cfg.Log.Error("Invalid configuration", "error", err)
		return err
	}

	if err := cfg.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect storage: %w", err)
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting migration job", "storage_driver", cfg.StorageDriver)

	var err error
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		err = postgresMigration.RunMigration(ctx, cfg.Client.Postgres, cfg.Log)
	case config.StorageMongo:
		err = mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log)
	default:
		err = fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	cfg.Log.Info("Migration completed successfully")
	return nil
}
