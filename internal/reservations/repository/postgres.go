package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "bistro/internal/reservations/errors"
	"bistro/pkg/client"
	"bistro/pkg/config"
	"bistro/pkg/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

const selectColumns = `id, name, email, phone, party_size,
	to_char(slot_date, 'YYYY-MM-DD'), to_char(slot_time, 'HH24:MI'),
	table_number, status, created_at`

type postgresReservationRepository struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func NewPostgresReservationRepository(cfg *config.Config) ReservationRepository {
	return &postgresReservationRepository{
		cfg:  cfg,
		pool: cfg.Client.Postgres,
	}
}

func (r *postgresReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservations
			(id, name, email, phone, party_size, slot_date, slot_time, table_number, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9, $10)`,
		reservation.ID,
		reservation.Name,
		reservation.Email,
		reservation.Phone,
		reservation.PartySize,
		reservation.Date,
		reservation.Time,
		reservation.TableNumber,
		reservation.Status,
		reservation.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return reservationserrors.ErrTableTaken
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

func (r *postgresReservationRepository) FindActiveBySlot(ctx context.Context, date string, clock string) ([]*model.Reservation, error) {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM reservations
		WHERE slot_date = $1::date AND slot_time = $2::time AND status = $3`,
		date, clock, model.StatusConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations for slot: %w", err)
	}

	return collectReservations(rows)
}

func (r *postgresReservationRepository) FindAll(ctx context.Context, date string) ([]*model.Reservation, error) {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if date == "" {
		rows, err = r.pool.Query(ctx, `
			SELECT `+selectColumns+`
			FROM reservations
			ORDER BY created_at DESC`)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+selectColumns+`
			FROM reservations
			WHERE slot_date = $1::date
			ORDER BY created_at DESC`, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}

	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]*model.Reservation, error) {
	reservations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Reservation, error) {
		var res model.Reservation
		err := row.Scan(
			&res.ID,
			&res.Name,
			&res.Email,
			&res.Phone,
			&res.PartySize,
			&res.Date,
			&res.Time,
			&res.TableNumber,
			&res.Status,
			&res.CreatedAt,
		)
		return &res, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservations: %w", err)
	}
	return reservations, nil
}
