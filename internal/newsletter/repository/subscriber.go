package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	newslettererrors "bistro/internal/newsletter/errors"
	"bistro/pkg/client"
	"bistro/pkg/config"
	"bistro/pkg/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	TableName      = "subscribers"
	CollectionName = "subscribers"

	pgUniqueViolation = "23505"
)

// SubscriberRepository persists subscribers. Create returns
// newslettererrors.ErrAlreadySubscribed when the email is already stored.
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *model.Subscriber) error
}

func NewSubscriberRepository(cfg *config.Config) (SubscriberRepository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.Client.Postgres == nil {
			return nil, fmt.Errorf("postgres client is not connected")
		}
		return &postgresSubscriberRepository{cfg: cfg, pool: cfg.Client.Postgres}, nil
	case config.StorageMongo:
		if cfg.Client.Mongo == nil {
			return nil, fmt.Errorf("mongo client is not connected")
		}
		return &mongoSubscriberRepository{
			cfg:        cfg,
			collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

type postgresSubscriberRepository struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func (r *postgresSubscriberRepository) Create(ctx context.Context, subscriber *model.Subscriber) error {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	subscriber.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscribers (id, email, consent, created_at)
		VALUES ($1, $2, $3, $4)`,
		subscriber.ID, subscriber.Email, subscriber.Consent, subscriber.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return newslettererrors.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return nil
}

type mongoSubscriberRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func (r *mongoSubscriberRepository) Create(ctx context.Context, subscriber *model.Subscriber) error {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	subscriber.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, subscriber); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return newslettererrors.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return nil
}
