package service

import (
	"context"
	"fmt"
	"math/rand"

	reservationserrors "bistro/internal/reservations/errors"
	"bistro/internal/reservations/repository"
	"bistro/internal/reservations/validator"
	"bistro/pkg/model"
)

// RandomSource picks an index in [0, n). Implementations must be safe for
// concurrent use.
type RandomSource interface {
	IntN(n int) int
}

type RandomFunc func(n int) int

func (f RandomFunc) IntN(n int) int {
	return f(n)
}

// DefaultRandom draws from the runtime's goroutine-safe global generator.
var DefaultRandom RandomSource = RandomFunc(rand.Intn)

// TableAllocator assigns one free table out of the pool 1..PoolSize for a slot.
// Two concurrent allocations can pick the same table; the repository's unique
// constraint on (date, time, table_number) rejects the loser.
type TableAllocator struct {
	repo     repository.ReservationRepository
	poolSize int
	random   RandomSource
}

func NewTableAllocator(repo repository.ReservationRepository, poolSize int, random RandomSource) *TableAllocator {
	if random == nil {
		random = DefaultRandom
	}
	return &TableAllocator{
		repo:     repo,
		poolSize: poolSize,
		random:   random,
	}
}

func (a *TableAllocator) PoolSize() int {
	return a.poolSize
}

// Allocate returns a table number for slot, or ErrFullyBooked / ErrNoTablesAvailable.
func (a *TableAllocator) Allocate(ctx context.Context, slot validator.Slot) (int, error) {
	existing, err := a.repo.FindActiveBySlot(ctx, slot.Date, slot.Time)
	if err != nil {
		return 0, fmt.Errorf("failed to load reservations for slot %s %s: %w", slot.Date, slot.Time, err)
	}

	if activeCount(existing) >= a.poolSize {
		return 0, reservationserrors.ErrFullyBooked
	}

	free := a.freeTables(existing)
	if len(free) == 0 {
		return 0, reservationserrors.ErrNoTablesAvailable
	}

	return free[a.random.IntN(len(free))], nil
}

// freeTables returns the table numbers not held by an active reservation, in
// ascending order.
func (a *TableAllocator) freeTables(existing []*model.Reservation) []int {
	used := make(map[int]struct{}, len(existing))
	for _, res := range existing {
		if res.IsActive() {
			used[res.TableNumber] = struct{}{}
		}
	}

	free := make([]int, 0, a.poolSize-len(used))
	for table := 1; table <= a.poolSize; table++ {
		if _, taken := used[table]; !taken {
			free = append(free, table)
		}
	}
	return free
}

func activeCount(existing []*model.Reservation) int {
	n := 0
	for _, res := range existing {
		if res.IsActive() {
			n++
		}
	}
	return n
}
