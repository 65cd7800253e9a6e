package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogsvc "library-backend/internal/domains/catalog/service"
	finemodel "library-backend/internal/domains/fine/model"
	finesvc "library-backend/internal/domains/fine/service"
	lendingmodel "library-backend/internal/domains/lending/model"
	lendingsvc "library-backend/internal/domains/lending/service"
	reservationmodel "library-backend/internal/domains/reservation/model"
	reservationsvc "library-backend/internal/domains/reservation/service"
)

// CirculationService wires the desk operations to the owning domains.
type CirculationService struct {
	catalog      catalogsvc.ServiceInterface
	lendings     lendingsvc.ServiceInterface
	reservations reservationsvc.ServiceInterface
	fines        finesvc.ServiceInterface
}

// NewService creates a new circulation service
func NewService(
	catalog catalogsvc.ServiceInterface,
	lendings lendingsvc.ServiceInterface,
	reservations reservationsvc.ServiceInterface,
	fines finesvc.ServiceInterface,
) ServiceInterface {
	return &CirculationService{
		catalog:      catalog,
		lendings:     lendings,
		reservations: reservations,
		fines:        fines,
	}
}

func (s *CirculationService) Checkout(ctx context.Context, req lendingmodel.CheckoutRequest) (*lendingmodel.LendingResponse, error) {
	return s.lendings.Checkout(ctx, req)
}

func (s *CirculationService) ReturnItem(ctx context.Context, req lendingmodel.ReturnRequest) (*lendingmodel.ReturnResult, error) {
	return s.lendings.ReturnItem(ctx, req)
}

func (s *CirculationService) Renew(ctx context.Context, req lendingmodel.RenewRequest) (*lendingmodel.LendingResponse, error) {
	return s.lendings.Renew(ctx, req)
}

func (s *CirculationService) Reserve(ctx context.Context, req reservationmodel.ReserveRequest) (*reservationmodel.ReservationResponse, error) {
	return s.reservations.Reserve(ctx, req)
}

func (s *CirculationService) CompleteReservation(ctx context.Context, req reservationmodel.CompleteRequest) (*reservationmodel.ReservationResponse, error) {
	return s.reservations.Complete(ctx, req)
}

func (s *CirculationService) CancelReservation(ctx context.Context, req reservationmodel.CancelRequest) (*reservationmodel.ReservationResponse, error) {
	return s.reservations.Cancel(ctx, req)
}

func (s *CirculationService) PayFine(ctx context.Context, barcode string) (*finemodel.FineResponse, error) {
	return s.fines.PayByBarcode(ctx, barcode)
}

func (s *CirculationService) AdjustInventory(ctx context.Context, bookID uuid.UUID, req catalogmodel.AdjustInventoryRequest) (*catalogmodel.AdjustInventoryResponse, error) {
	return s.catalog.AdjustInventory(ctx, bookID, req)
}

func (s *CirculationService) MarkLost(ctx context.Context, barcode string) (*catalogmodel.ItemResponse, error) {
	return s.catalog.MarkLost(ctx, barcode)
}

func (s *CirculationService) ItemSummary(ctx context.Context, barcode string) (*ItemSummary, error) {
	item, err := s.catalog.GetItem(ctx, barcode)
	if err != nil {
		return nil, err
	}

	summary := &ItemSummary{Item: *item}

	lending, err := s.lendings.OpenLending(ctx, barcode)
	if err != nil && !errors.Is(err, lendingmodel.ErrNoOpenLending) {
		return nil, err
	}
	summary.Lending = lending

	status, err := s.reservations.StatusForItem(ctx, barcode)
	if err != nil {
		return nil, err
	}
	summary.Reservation = status

	return summary, nil
}
