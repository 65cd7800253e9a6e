package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/fine/model"
)

// memoryRepository is an in-memory fine store used in tests.
type memoryRepository struct {
	mu    sync.RWMutex
	fines map[uuid.UUID]model.Fine
}

// NewMemoryRepository creates an in-memory fine repository
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		fines: make(map[uuid.UUID]model.Fine),
	}
}

func (r *memoryRepository) Create(_ context.Context, fine *model.Fine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fines[fine.ID] = *fine
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fine, ok := r.fines[id]
	if !ok {
		return nil, model.NewFineNotFoundError(id)
	}
	return &fine, nil
}

func (r *memoryRepository) LatestUnpaidByBarcode(_ context.Context, barcode string) (*model.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Fine
	for id := range r.fines {
		f := r.fines[id]
		if f.ItemBarcode != barcode || f.Status != model.FineStatusUnpaid {
			continue
		}
		if latest == nil || f.AssessedAt.After(latest.AssessedAt) {
			latest = &f
		}
	}
	if latest == nil {
		return nil, model.NewNoUnpaidFineError(barcode)
	}
	fine := *latest
	return &fine, nil
}

func (r *memoryRepository) MarkPaid(_ context.Context, id uuid.UUID, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fine, ok := r.fines[id]
	if !ok {
		return model.NewFineNotFoundError(id)
	}
	if fine.Status == model.FineStatusPaid {
		return model.ErrFineAlreadyPaid
	}
	fine.Status = model.FineStatusPaid
	fine.PaidAt = &paidAt
	r.fines[id] = fine
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]model.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fines := make([]model.Fine, 0, len(r.fines))
	for _, f := range r.fines {
		fines = append(fines, f)
	}
	sortByAssessedDesc(fines)
	return fines, nil
}

func (r *memoryRepository) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fines := make([]model.Fine, 0)
	for _, f := range r.fines {
		if f.MemberID == memberID {
			fines = append(fines, f)
		}
	}
	sortByAssessedDesc(fines)
	return fines, nil
}

func (r *memoryRepository) ListUnpaidByMember(_ context.Context, memberID uuid.UUID) ([]model.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fines := make([]model.Fine, 0)
	for _, f := range r.fines {
		if f.MemberID == memberID && f.Status == model.FineStatusUnpaid {
			fines = append(fines, f)
		}
	}
	sortByAssessedDesc(fines)
	return fines, nil
}

func sortByAssessedDesc(fines []model.Fine) {
	sort.Slice(fines, func(i, j int) bool {
		return fines[i].AssessedAt.After(fines[j].AssessedAt)
	})
}
