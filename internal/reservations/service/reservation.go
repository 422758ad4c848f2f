package service

import (
	"context"
	"errors"
	"strings"

	"bistro/internal/events"
	reservationserrors "bistro/internal/reservations/errors"
	"bistro/internal/reservations/repository"
	"bistro/internal/reservations/validator"
	"bistro/pkg/config"
	apperrors "bistro/pkg/errors"
	"bistro/pkg/model"
	"bistro/pkg/sanitizer"

	"github.com/google/uuid"
)

const ConfirmationMessage = "Reservation confirmed"

type ReservationService interface {
	Create(ctx context.Context, req *model.ReservationRequest) (*model.ReservationConfirmation, error)
	List(ctx context.Context, date string) ([]*model.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	allocator *TableAllocator
	slots     *validator.SlotValidator
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	allocator *TableAllocator,
	slots *validator.SlotValidator,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &reservationService{
		repo:      repo,
		allocator: allocator,
		slots:     slots,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.ReservationConfirmation, error) {
	s.sanitize(req)

	if err := s.validate(req); err != nil {
		return nil, err
	}

	slot, err := s.slots.Validate(req.Date, req.Time)
	if err != nil {
		s.cfg.Log.Warn("Reservation slot rejected",
			"date", req.Date,
			"time", req.Time,
			"reason", err.Error(),
		)
		return nil, apperrors.Validation(err.Error(), nil)
	}

	table, err := s.allocator.Allocate(ctx, slot)
	if err != nil {
		return nil, s.translateAllocationError(err, slot)
	}

	reservation := &model.Reservation{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		PartySize:   req.PartySize,
		Date:        slot.Date,
		Time:        slot.Time,
		TableNumber: table,
		Status:      model.StatusConfirmed,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		if errors.Is(err, reservationserrors.ErrTableTaken) {
			s.cfg.Log.Warn("Table was taken by a concurrent reservation",
				"date", slot.Date,
				"time", slot.Time,
				"table_number", table,
			)
			return nil, apperrors.Conflict("table already assigned, please retry")
		}
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return nil, storageError("Could not create reservation", err)
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"date", reservation.Date,
		"time", reservation.Time,
		"party_size", reservation.PartySize,
		"table_number", reservation.TableNumber,
	)

	s.publisher.ReservationConfirmed(ctx, reservation, req.SpecialRequests)

	return &model.ReservationConfirmation{
		ID:          reservation.ID,
		Status:      reservation.Status,
		TableNumber: reservation.TableNumber,
		Message:     ConfirmationMessage,
	}, nil
}

func (s *reservationService) List(ctx context.Context, date string) ([]*model.Reservation, error) {
	if date != "" {
		if err := s.slots.ValidateDate(date); err != nil {
			return nil, apperrors.Validation("Invalid date filter. Expected YYYY-MM-DD.", map[string]any{"date": date})
		}
	}

	reservations, err := s.repo.FindAll(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "date", date, "error", err)
		return nil, storageError("Could not load reservations", err)
	}
	if reservations == nil {
		reservations = []*model.Reservation{}
	}

	return reservations, nil
}

func (s *reservationService) translateAllocationError(err error, slot validator.Slot) error {
	switch {
	case errors.Is(err, reservationserrors.ErrFullyBooked):
		s.cfg.Log.Info("Slot fully booked", "date", slot.Date, "time", slot.Time)
		return apperrors.Capacity(reservationserrors.ErrFullyBooked.Error())
	case errors.Is(err, reservationserrors.ErrNoTablesAvailable):
		s.cfg.Log.Warn("No free table although slot is under capacity", "date", slot.Date, "time", slot.Time)
		return apperrors.Capacity(reservationserrors.ErrNoTablesAvailable.Error())
	default:
		s.cfg.Log.Error("Failed to allocate table", "date", slot.Date, "time", slot.Time, "error", err)
		return storageError("Could not create reservation", err)
	}
}

func storageError(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout()
	}
	return apperrors.Internal(message, err)
}

func (s *reservationService) validate(req *model.ReservationRequest) error {
	if err := s.validator.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.cfg.Log.Warn("Reservation request rejected", "errors", verrs.Error())
			return apperrors.Validation("Invalid reservation request", verrs.Details())
		}
		return apperrors.Internal("Could not validate reservation", err)
	}
	return nil
}

func (s *reservationService) sanitize(req *model.ReservationRequest) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Phone = sanitizer.NormalizeOptional(req.Phone, sanitizer.NormalizePhone)
	req.SpecialRequests = sanitizer.NormalizeOptional(req.SpecialRequests, strings.TrimSpace)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.TrimAndNormalize(req.Time)
}
