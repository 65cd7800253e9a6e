package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogrepo "library-backend/internal/domains/catalog/repository"
	membersvc "library-backend/internal/domains/member/service"
	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/repository"
)

// ReservationService implements item holds. Placing a hold flips the
// item AVAILABLE -> RESERVED through the catalog's conditional update,
// so two members racing for the same copy cannot both win.
type ReservationService struct {
	repo    repository.RepositoryInterface
	catalog catalogrepo.RepositoryInterface
	members membersvc.ServiceInterface
	now     func() time.Time
}

// NewService creates a new reservation service
func NewService(
	repo repository.RepositoryInterface,
	catalog catalogrepo.RepositoryInterface,
	members membersvc.ServiceInterface,
) ServiceInterface {
	return &ReservationService{
		repo:    repo,
		catalog: catalog,
		members: members,
		now:     time.Now,
	}
}

func (s *ReservationService) Reserve(ctx context.Context, req model.ReserveRequest) (*model.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.members.EnsureEligible(ctx, req.MemberID); err != nil {
		return nil, err
	}

	item, err := s.catalog.GetItem(ctx, req.ItemBarcode)
	if err != nil {
		return nil, err
	}
	if !item.Loanable() {
		return nil, fmt.Errorf("%w: copy is reference only", catalogmodel.ErrItemNotReservable)
	}

	// The conditional status flip is the reservation's concurrency
	// guard: it succeeds for exactly one caller per available copy.
	err = s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, catalogmodel.ItemStatusAvailable, catalogmodel.ItemStatusReserved)
	if err != nil {
		if errors.Is(err, catalogmodel.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: %s", catalogmodel.ErrItemNotReservable, req.ItemBarcode)
		}
		return nil, err
	}

	reservation := &model.Reservation{
		ID:          uuid.New(),
		ItemBarcode: req.ItemBarcode,
		MemberID:    req.MemberID,
		Status:      model.StatusWaiting,
		ReservedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		// Release the item so a failed record write does not strand it.
		if revertErr := s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, catalogmodel.ItemStatusReserved, catalogmodel.ItemStatusAvailable); revertErr != nil {
			log.Error().Err(revertErr).Str("barcode", req.ItemBarcode).Msg("failed to revert item status after reservation write failure")
		}
		return nil, err
	}

	resp := reservation.ToResponse()
	return &resp, nil
}

// Complete resolves the active hold to COMPLETED without touching the
// item status. Checkout drives this through ClaimForCheckout; the
// standalone operation exists for desk corrections.
func (s *ReservationService) Complete(ctx context.Context, req model.CompleteRequest) (*model.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reservation, err := s.repo.ActiveByBarcode(ctx, req.ItemBarcode)
	if err != nil {
		return nil, err
	}
	if reservation.MemberID != req.MemberID {
		return nil, model.ErrNotReservationHolder
	}

	resolvedAt := s.now()
	if err := s.repo.Resolve(ctx, reservation.ID, model.StatusCompleted, resolvedAt); err != nil {
		return nil, err
	}
	reservation.Status = model.StatusCompleted
	reservation.ResolvedAt = &resolvedAt

	resp := reservation.ToResponse()
	return &resp, nil
}

func (s *ReservationService) Cancel(ctx context.Context, req model.CancelRequest) (*model.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reservation, err := s.repo.ActiveByBarcode(ctx, req.ItemBarcode)
	if err != nil {
		return nil, err
	}
	if reservation.MemberID != req.MemberID {
		return nil, model.ErrNotReservationHolder
	}

	if err := s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, catalogmodel.ItemStatusReserved, catalogmodel.ItemStatusAvailable); err != nil {
		return nil, err
	}

	resolvedAt := s.now()
	if err := s.repo.Resolve(ctx, reservation.ID, model.StatusCanceled, resolvedAt); err != nil {
		return nil, err
	}
	reservation.Status = model.StatusCanceled
	reservation.ResolvedAt = &resolvedAt

	resp := reservation.ToResponse()
	return &resp, nil
}

// StatusForItem reports the active reservation status for an item, or
// NONE when the item carries no hold.
func (s *ReservationService) StatusForItem(ctx context.Context, barcode string) (model.ReservationStatus, error) {
	reservation, err := s.repo.ActiveByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, model.ErrNoActiveReservation) {
			return model.StatusNone, nil
		}
		return model.StatusNone, err
	}
	return reservation.Status, nil
}

// ClaimForCheckout completes the active hold on the item when memberID
// is the holder. It returns false, without error, when no hold exists or
// the hold belongs to someone else.
func (s *ReservationService) ClaimForCheckout(ctx context.Context, barcode string, memberID uuid.UUID) (bool, error) {
	reservation, err := s.repo.ActiveByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, model.ErrNoActiveReservation) {
			return false, nil
		}
		return false, err
	}
	if reservation.MemberID != memberID {
		return false, nil
	}

	if err := s.repo.Resolve(ctx, reservation.ID, model.StatusCompleted, s.now()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]model.ReservationResponse, error) {
	reservations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(reservations), nil
}

func (s *ReservationService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.ReservationResponse, error) {
	reservations, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(reservations), nil
}
