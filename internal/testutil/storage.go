// Package testutil connects integration tests to real storage.
//
// Suites are tagged "integration" and read TEST_DATABASE_URL and TEST_MONGO_URI;
// a suite whose variable is unset is skipped. Packages share one Postgres
// schema, so run them serially:
//
//	go test -tags integration -p 1 ./internal/...
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	mongoMigration "bistro/internal/migrations/mongo"
	postgresMigration "bistro/internal/migrations/postgres"
	"bistro/pkg/client"
	"bistro/pkg/config"
	"bistro/pkg/logger"
)

const (
	EnvTestDatabaseURL = "TEST_DATABASE_URL"
	EnvTestMongoURI    = "TEST_MONGO_URI"

	ConnectionTimeout = 10 * time.Second
	OperationTimeout  = 5 * time.Second
)

// PostgresConfig returns a config bound to a migrated Postgres database with the
// given tables emptied.
func PostgresConfig(t *testing.T, tables ...string) *config.Config {
	t.Helper()

	databaseURL := os.Getenv(EnvTestDatabaseURL)
	if databaseURL == "" {
		t.Skipf("%s is not set", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	c := client.NewClient()
	if err := c.SetPostgres(ctx, databaseURL); err != nil {
		t.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	t.Cleanup(func() { shutdown(t, c) })

	log := logger.Discard()
	if err := postgresMigration.RunMigration(ctx, c.Postgres, log); err != nil {
		t.Fatalf("failed to migrate PostgreSQL: %v", err)
	}

	for _, table := range tables {
		if _, err := c.Postgres.Exec(ctx, fmt.Sprintf("TRUNCATE %s", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}

	return newConfig(config.StoragePostgres, "", c, log)
}

// MongoConfig returns a config bound to a fresh, migrated database that is
// dropped when the test ends.
func MongoConfig(t *testing.T) *config.Config {
	t.Helper()

	mongoURI := os.Getenv(EnvTestMongoURI)
	if mongoURI == "" {
		t.Skipf("%s is not set", EnvTestMongoURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	c := client.NewClient()
	if err := c.SetMongo(ctx, mongoURI); err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	dbName := fmt.Sprintf("bistro_test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
		defer cancel()
		if err := c.Mongo.Database(dbName).Drop(ctx); err != nil {
			t.Logf("warning: failed to drop %s: %v", dbName, err)
		}
		shutdown(t, c)
	})

	log := logger.Discard()
	if err := mongoMigration.RunMigration(ctx, c.Mongo, dbName, log); err != nil {
		t.Fatalf("failed to migrate MongoDB: %v", err)
	}

	return newConfig(config.StorageMongo, dbName, c, log)
}

func newConfig(driver, dbName string, c *client.Client, log *logger.Logger) *config.Config {
	return &config.Config{
		StorageDriver:     driver,
		MongoDatabaseName: dbName,
		ReadTimeout:       OperationTimeout,
		WriteTimeout:      OperationTimeout,
		Log:               log,
		Client:            c,
	}
}

func shutdown(t *testing.T, c *client.Client) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()
	if err := c.GracefulShutdown(ctx); err != nil {
		t.Logf("warning: failed to close storage client: %v", err)
	}
}
