package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/fine/model"
)

// ServiceInterface defines fine business logic operations.
//
// Assess is a pure calculation; RecordFine persists an assessed fine and
// is called by the lending service when a late return is processed.
type ServiceInterface interface {
	Assess(daysOverdue int) decimal.Decimal
	RecordFine(ctx context.Context, fine *model.Fine) error
	PayByBarcode(ctx context.Context, barcode string) (*model.FineResponse, error)
	ListFines(ctx context.Context) ([]model.FineResponse, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.FineResponse, error)
	ListUnpaidByMember(ctx context.Context, memberID uuid.UUID) ([]model.FineResponse, error)
}
