package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/lending/model"
)

// memoryRepository is an in-memory lending ledger used in tests.
type memoryRepository struct {
	mu       sync.RWMutex
	lendings map[uuid.UUID]model.Lending
}

// NewMemoryRepository creates an in-memory lending repository
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		lendings: make(map[uuid.UUID]model.Lending),
	}
}

func (r *memoryRepository) Create(_ context.Context, lending *model.Lending) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lendings[lending.ID] = *lending
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Lending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lending, ok := r.lendings[id]
	if !ok {
		return nil, model.NewLendingNotFoundError(id)
	}
	return &lending, nil
}

func (r *memoryRepository) OpenByBarcode(_ context.Context, barcode string) (*model.Lending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id := range r.lendings {
		l := r.lendings[id]
		if l.ItemBarcode == barcode && l.Open() {
			return &l, nil
		}
	}
	return nil, model.NewNoOpenLendingError(barcode)
}

func (r *memoryRepository) Close(_ context.Context, id uuid.UUID, returnedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lending, ok := r.lendings[id]
	if !ok || !lending.Open() {
		return model.NewLendingNotFoundError(id)
	}
	lending.ReturnedAt = &returnedAt
	r.lendings[id] = lending
	return nil
}

func (r *memoryRepository) ExtendDueDate(_ context.Context, id uuid.UUID, dueDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lending, ok := r.lendings[id]
	if !ok || !lending.Open() {
		return model.NewLendingNotFoundError(id)
	}
	lending.DueDate = dueDate
	lending.Renewals++
	r.lendings[id] = lending
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]model.Lending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Lending, 0, len(r.lendings))
	for _, l := range r.lendings {
		out = append(out, l)
	}
	sortByCheckedOutDesc(out)
	return out, nil
}

func (r *memoryRepository) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.Lending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Lending, 0)
	for _, l := range r.lendings {
		if l.MemberID == memberID {
			out = append(out, l)
		}
	}
	sortByCheckedOutDesc(out)
	return out, nil
}

func (r *memoryRepository) ListOverdue(_ context.Context, asOf time.Time) ([]model.Lending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Lending, 0)
	for _, l := range r.lendings {
		if l.Open() && l.DueDate.Before(asOf) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func sortByCheckedOutDesc(lendings []model.Lending) {
	sort.Slice(lendings, func(i, j int) bool {
		return lendings[i].CheckedOutAt.After(lendings[j].CheckedOutAt)
	})
}
