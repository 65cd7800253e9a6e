package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/lending/model"
)

// RepositoryInterface defines lending ledger data access operations
type RepositoryInterface interface {
	Create(ctx context.Context, lending *model.Lending) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lending, error)
	OpenByBarcode(ctx context.Context, barcode string) (*model.Lending, error)
	Close(ctx context.Context, id uuid.UUID, returnedAt time.Time) error
	ExtendDueDate(ctx context.Context, id uuid.UUID, dueDate time.Time) error
	List(ctx context.Context) ([]model.Lending, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Lending, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.Lending, error)
}
