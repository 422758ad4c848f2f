package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client holds the storage handles for the process. Exactly one of Postgres or Mongo
// is set, depending on the configured storage driver.
type Client struct {
	Postgres *pgxpool.Pool
	Mongo    *mongo.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetPostgres(ctx context.Context, databaseURL string) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	c.Postgres = pool
	return nil
}

func (c *Client) SetMongo(ctx context.Context, mongoURI string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.Mongo = client
	return nil
}

// Ping checks whichever storage handle is open.
func (c *Client) Ping(ctx context.Context) error {
	switch {
	case c.Postgres != nil:
		return c.Postgres.Ping(ctx)
	case c.Mongo != nil:
		return c.Mongo.Ping(ctx, nil)
	default:
		return errors.New("no storage client configured")
	}
}

func (c *Client) GracefulShutdown(ctx context.Context) error {
	if c.Postgres != nil {
		c.Postgres.Close()
		c.Postgres = nil
	}
	if c.Mongo != nil {
		err := c.Mongo.Disconnect(ctx)
		c.Mongo = nil
		return err
	}
	return nil
}

// WithTimeout bounds a single storage call. A shorter deadline already on ctx wins.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}
