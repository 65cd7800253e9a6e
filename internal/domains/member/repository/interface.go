package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

// RepositoryInterface defines member data access operations.
//
// IncrementOutstanding is the concurrency guard for the borrow limit: it
// must atomically check that the account is ACTIVE and below the limit
// before bumping the counter, so two concurrent checkouts cannot both
// slip past the last remaining slot.
type RepositoryInterface interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error
	IncrementOutstanding(ctx context.Context, id uuid.UUID, limit int) error
	DecrementOutstanding(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
