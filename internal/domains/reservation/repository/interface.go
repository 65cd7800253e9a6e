package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/reservation/model"
)

// RepositoryInterface defines reservation data access operations
type RepositoryInterface interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	ActiveByBarcode(ctx context.Context, barcode string) (*model.Reservation, error)
	Resolve(ctx context.Context, id uuid.UUID, status model.ReservationStatus, resolvedAt time.Time) error
	List(ctx context.Context) ([]model.Reservation, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Reservation, error)
}
