package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/reservation/model"
)

// ServiceInterface defines reservation business logic operations.
//
// ClaimForCheckout is called by the lending service when a member checks
// out a RESERVED item: it completes the hold if the member is the holder
// and reports whether the claim succeeded.
type ServiceInterface interface {
	Reserve(ctx context.Context, req model.ReserveRequest) (*model.ReservationResponse, error)
	Complete(ctx context.Context, req model.CompleteRequest) (*model.ReservationResponse, error)
	Cancel(ctx context.Context, req model.CancelRequest) (*model.ReservationResponse, error)
	StatusForItem(ctx context.Context, barcode string) (model.ReservationStatus, error)
	ClaimForCheckout(ctx context.Context, barcode string, memberID uuid.UUID) (bool, error)
	ListReservations(ctx context.Context) ([]model.ReservationResponse, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.ReservationResponse, error)
}
