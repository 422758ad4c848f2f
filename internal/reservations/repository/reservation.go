package repository

import (
	"context"
	"fmt"

	"bistro/pkg/config"
	"bistro/pkg/model"
)

const (
	TableName      = "reservations"
	CollectionName = "reservations"
)

// ReservationRepository persists reservations. Create returns
// reservationserrors.ErrTableTaken when the table is already held by a
// confirmed reservation for the same slot.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindActiveBySlot(ctx context.Context, date string, clock string) ([]*model.Reservation, error)
	// FindAll lists reservations newest first, optionally restricted to one date.
	FindAll(ctx context.Context, date string) ([]*model.Reservation, error)
}

// NewReservationRepository returns the repository for the configured storage driver.
func NewReservationRepository(cfg *config.Config) (ReservationRepository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.Client.Postgres == nil {
			return nil, fmt.Errorf("postgres client is not connected")
		}
		return NewPostgresReservationRepository(cfg), nil
	case config.StorageMongo:
		if cfg.Client.Mongo == nil {
			return nil, fmt.Errorf("mongo client is not connected")
		}
		return NewMongoReservationRepository(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
