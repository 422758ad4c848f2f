package service

import (
	"context"
	"sort"
	"sync"

	reservationserrors "bistro/internal/reservations/errors"
	"bistro/pkg/model"
)

// memoryRepository enforces one confirmed reservation per (date, time, table).
type memoryRepository struct {
	mu           sync.Mutex
	reservations []*model.Reservation
	createErr    error
	findErr      error
}

func (m *memoryRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	for _, r := range m.reservations {
		if r.IsActive() && r.Date == reservation.Date && r.Time == reservation.Time && r.TableNumber == reservation.TableNumber {
			return reservationserrors.ErrTableTaken
		}
	}
	copied := *reservation
	m.reservations = append(m.reservations, &copied)
	return nil
}

func (m *memoryRepository) FindActiveBySlot(ctx context.Context, date string, clock string) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.IsActive() && r.Date == date && r.Time == clock {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindAll(ctx context.Context, date string) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.Reservation
	for i := len(m.reservations) - 1; i >= 0; i-- {
		if date == "" || m.reservations[i].Date == date {
			out = append(out, m.reservations[i])
		}
	}
	return out, nil
}

func (m *memoryRepository) tables(date, clock string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var tables []int
	for _, r := range m.reservations {
		if r.Date == date && r.Time == clock {
			tables = append(tables, r.TableNumber)
		}
	}
	sort.Ints(tables)
	return tables
}

type mockPublisher struct {
	mu              sync.Mutex
	confirmed       []*model.Reservation
	specialRequests []*string
}

func (p *mockPublisher) ReservationConfirmed(ctx context.Context, reservation *model.Reservation, specialRequests *string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmed = append(p.confirmed, reservation)
	p.specialRequests = append(p.specialRequests, specialRequests)
}

func (p *mockPublisher) NewsletterSubscribed(ctx context.Context, subscriber *model.Subscriber) {}

func (p *mockPublisher) Close() error { return nil }
