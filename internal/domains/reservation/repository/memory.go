package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/reservation/model"
)

// memoryRepository is an in-memory reservation store used in tests.
type memoryRepository struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]model.Reservation
}

// NewMemoryRepository creates an in-memory reservation repository
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		reservations: make(map[uuid.UUID]model.Reservation),
	}
}

func (r *memoryRepository) Create(_ context.Context, reservation *model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reservations[reservation.ID] = *reservation
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	return &res, nil
}

func (r *memoryRepository) ActiveByBarcode(_ context.Context, barcode string) (*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Reservation
	for id := range r.reservations {
		res := r.reservations[id]
		if res.ItemBarcode != barcode || !res.Status.Active() {
			continue
		}
		if latest == nil || res.ReservedAt.After(latest.ReservedAt) {
			latest = &res
		}
	}
	if latest == nil {
		return nil, model.NewNoActiveReservationError(barcode)
	}
	res := *latest
	return &res, nil
}

func (r *memoryRepository) Resolve(_ context.Context, id uuid.UUID, status model.ReservationStatus, resolvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok || !res.Status.Active() {
		return model.ErrReservationNotFound
	}
	res.Status = status
	res.ResolvedAt = &resolvedAt
	r.reservations[id] = res
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		out = append(out, res)
	}
	sortByReservedDesc(out)
	return out, nil
}

func (r *memoryRepository) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Reservation, 0)
	for _, res := range r.reservations {
		if res.MemberID == memberID {
			out = append(out, res)
		}
	}
	sortByReservedDesc(out)
	return out, nil
}

func sortByReservedDesc(reservations []model.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].ReservedAt.After(reservations[j].ReservedAt)
	})
}
