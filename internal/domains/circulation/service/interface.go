package service

import (
	"context"

	"github.com/google/uuid"

	catalogmodel "library-backend/internal/domains/catalog/model"
	finemodel "library-backend/internal/domains/fine/model"
	lendingmodel "library-backend/internal/domains/lending/model"
	reservationmodel "library-backend/internal/domains/reservation/model"
)

// ServiceInterface is the single front desk for circulation: every desk
// operation goes through it, and it delegates to the owning domain
// service without adding rules of its own.
type ServiceInterface interface {
	Checkout(ctx context.Context, req lendingmodel.CheckoutRequest) (*lendingmodel.LendingResponse, error)
	ReturnItem(ctx context.Context, req lendingmodel.ReturnRequest) (*lendingmodel.ReturnResult, error)
	Renew(ctx context.Context, req lendingmodel.RenewRequest) (*lendingmodel.LendingResponse, error)
	Reserve(ctx context.Context, req reservationmodel.ReserveRequest) (*reservationmodel.ReservationResponse, error)
	CompleteReservation(ctx context.Context, req reservationmodel.CompleteRequest) (*reservationmodel.ReservationResponse, error)
	CancelReservation(ctx context.Context, req reservationmodel.CancelRequest) (*reservationmodel.ReservationResponse, error)
	PayFine(ctx context.Context, barcode string) (*finemodel.FineResponse, error)
	AdjustInventory(ctx context.Context, bookID uuid.UUID, req catalogmodel.AdjustInventoryRequest) (*catalogmodel.AdjustInventoryResponse, error)
	MarkLost(ctx context.Context, barcode string) (*catalogmodel.ItemResponse, error)
	ItemSummary(ctx context.Context, barcode string) (*ItemSummary, error)
}

// ItemSummary is the desk view of one copy: its catalog state plus the
// open lending and active reservation, when present.
type ItemSummary struct {
	Item        catalogmodel.ItemResponse          `json:"item"`
	Lending     *lendingmodel.LendingResponse      `json:"lending,omitempty"`
	Reservation reservationmodel.ReservationStatus `json:"reservation_status"`
}
