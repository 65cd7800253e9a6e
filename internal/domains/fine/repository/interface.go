package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/fine/model"
)

// RepositoryInterface defines fine data access operations
type RepositoryInterface interface {
	Create(ctx context.Context, fine *model.Fine) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Fine, error)
	LatestUnpaidByBarcode(ctx context.Context, barcode string) (*model.Fine, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	List(ctx context.Context) ([]model.Fine, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Fine, error)
	ListUnpaidByMember(ctx context.Context, memberID uuid.UUID) ([]model.Fine, error)
}
