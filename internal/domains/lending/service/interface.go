package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/lending/model"
)

// ServiceInterface defines lending ledger business logic operations
type ServiceInterface interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.LendingResponse, error)
	ReturnItem(ctx context.Context, req model.ReturnRequest) (*model.ReturnResult, error)
	Renew(ctx context.Context, req model.RenewRequest) (*model.LendingResponse, error)
	OpenLending(ctx context.Context, barcode string) (*model.LendingResponse, error)
	ListLendings(ctx context.Context) ([]model.LendingResponse, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.LendingResponse, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.LendingResponse, error)
}
