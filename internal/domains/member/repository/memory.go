package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

// memoryRepository is an in-memory member store used in tests.
type memoryRepository struct {
	mu      sync.RWMutex
	members map[uuid.UUID]model.Member
	byEmail map[string]uuid.UUID
}

// NewMemoryRepository creates an in-memory member repository
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		members: make(map[uuid.UUID]model.Member),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepository) Create(_ context.Context, member *model.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[member.Email]; exists {
		return model.ErrDuplicateEmail
	}
	r.members[member.ID] = *member
	r.byEmail[member.Email] = member.ID
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, model.NewMemberNotFoundError(id)
	}
	return &member, nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	member := r.members[id]
	return &member, nil
}

func (r *memoryRepository) List(_ context.Context) ([]model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]model.Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	return members, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.AccountStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return model.NewMemberNotFoundError(id)
	}
	member.Status = status
	r.members[id] = member
	return nil
}

func (r *memoryRepository) IncrementOutstanding(_ context.Context, id uuid.UUID, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return model.NewMemberNotFoundError(id)
	}
	if !member.Eligible() {
		return model.NewMemberNotEligibleError(member.Status)
	}
	if member.OutstandingLoans >= limit {
		return model.NewBorrowLimitExceededError(limit)
	}
	member.OutstandingLoans++
	r.members[id] = member
	return nil
}

func (r *memoryRepository) DecrementOutstanding(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return model.NewMemberNotFoundError(id)
	}
	if member.OutstandingLoans > 0 {
		member.OutstandingLoans--
		r.members[id] = member
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return model.NewMemberNotFoundError(id)
	}
	if member.OutstandingLoans > 0 {
		return model.ErrMemberHasOpenLoans
	}
	delete(r.byEmail, member.Email)
	delete(r.members, id)
	return nil
}
