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
	finemodel "library-backend/internal/domains/fine/model"
	finesvc "library-backend/internal/domains/fine/service"
	"library-backend/internal/domains/lending/model"
	"library-backend/internal/domains/lending/repository"
	membersvc "library-backend/internal/domains/member/service"
	reservationsvc "library-backend/internal/domains/reservation/service"
)

// LendingService implements checkout, return and renewal.
//
// Checkout concurrency rests on two conditional updates: the member's
// loan-slot counter and the item's status flip to LOANED. Each succeeds
// for at most one caller, and failures after a successful step are
// compensated so neither the slot nor the item is left stranded.
type LendingService struct {
	repo              repository.RepositoryInterface
	catalog           catalogrepo.RepositoryInterface
	members           membersvc.ServiceInterface
	reservations      reservationsvc.ServiceInterface
	fines             finesvc.ServiceInterface
	loanPeriodDays    int
	renewalPeriodDays int
	now               func() time.Time
}

// NewService creates a new lending service
func NewService(
	repo repository.RepositoryInterface,
	catalog catalogrepo.RepositoryInterface,
	members membersvc.ServiceInterface,
	reservations reservationsvc.ServiceInterface,
	fines finesvc.ServiceInterface,
	loanPeriodDays int,
	renewalPeriodDays int,
) ServiceInterface {
	return &LendingService{
		repo:              repo,
		catalog:           catalog,
		members:           members,
		reservations:      reservations,
		fines:             fines,
		loanPeriodDays:    loanPeriodDays,
		renewalPeriodDays: renewalPeriodDays,
		now:               time.Now,
	}
}

func (s *LendingService) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.LendingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.catalog.GetItem(ctx, req.ItemBarcode)
	if err != nil {
		return nil, err
	}

	if !item.Loanable() {
		return nil, fmt.Errorf("%w: copy is reference only", catalogmodel.ErrItemNotAvailable)
	}

	switch item.Status {
	case catalogmodel.ItemStatusAvailable, catalogmodel.ItemStatusReserved:
		// proceed
	default:
		return nil, fmt.Errorf("%w: item is %s", catalogmodel.ErrItemNotAvailable, item.Status)
	}

	// Claim the member's loan slot first; this enforces eligibility
	// and the borrow limit atomically.
	if err := s.members.ClaimLoanSlot(ctx, req.MemberID); err != nil {
		return nil, err
	}

	// A RESERVED copy may only go to the member holding the hold.
	if item.Status == catalogmodel.ItemStatusReserved {
		claimed, err := s.reservations.ClaimForCheckout(ctx, req.ItemBarcode, req.MemberID)
		if err != nil {
			s.releaseSlot(ctx, req.MemberID)
			return nil, err
		}
		if !claimed {
			s.releaseSlot(ctx, req.MemberID)
			return nil, fmt.Errorf("%w: item is held for another member", catalogmodel.ErrItemNotAvailable)
		}
	}

	if err := s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, item.Status, catalogmodel.ItemStatusLoaned); err != nil {
		s.releaseSlot(ctx, req.MemberID)
		if errors.Is(err, catalogmodel.ErrStatusConflict) {
			// Keep the conflict sentinel in the chain so callers can
			// tell a lost race (retryable) from a plain unavailable copy.
			return nil, fmt.Errorf("%w: %w", catalogmodel.ErrItemNotAvailable, err)
		}
		return nil, err
	}

	checkedOutAt := s.now()
	lending := &model.Lending{
		ID:           uuid.New(),
		ItemBarcode:  req.ItemBarcode,
		MemberID:     req.MemberID,
		CheckedOutAt: checkedOutAt,
		DueDate:      checkedOutAt.AddDate(0, 0, s.loanPeriodDays),
	}
	if err := s.repo.Create(ctx, lending); err != nil {
		// Put the copy back and free the slot.
		if revertErr := s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, catalogmodel.ItemStatusLoaned, catalogmodel.ItemStatusAvailable); revertErr != nil {
			log.Error().Err(revertErr).Str("barcode", req.ItemBarcode).Msg("failed to revert item status after ledger write failure")
		}
		s.releaseSlot(ctx, req.MemberID)
		return nil, err
	}

	resp := lending.ToResponse()
	return &resp, nil
}

func (s *LendingService) ReturnItem(ctx context.Context, req model.ReturnRequest) (*model.ReturnResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lending, err := s.repo.OpenByBarcode(ctx, req.ItemBarcode)
	if err != nil {
		return nil, err
	}

	returnedAt := s.now()
	if req.ReferenceDate != nil {
		returnedAt = *req.ReferenceDate
	}

	if err := s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, catalogmodel.ItemStatusLoaned, catalogmodel.ItemStatusAvailable); err != nil {
		return nil, err
	}

	if err := s.repo.Close(ctx, lending.ID, returnedAt); err != nil {
		// Flip the copy back to LOANED so the still-open ledger entry and
		// the item status stay in agreement and nobody can borrow it out
		// from under the open lending.
		if revertErr := s.catalog.UpdateItemStatus(ctx, req.ItemBarcode, catalogmodel.ItemStatusAvailable, catalogmodel.ItemStatusLoaned); revertErr != nil {
			log.Error().Err(revertErr).Str("barcode", req.ItemBarcode).Msg("failed to revert item status after ledger close failure")
		}
		return nil, err
	}
	lending.ReturnedAt = &returnedAt

	if err := s.members.ReleaseLoanSlot(ctx, lending.MemberID); err != nil {
		log.Error().Err(err).Str("member_id", lending.MemberID.String()).Msg("failed to release loan slot on return")
	}

	result := &model.ReturnResult{Lending: lending.ToResponse()}

	if days := lending.OverdueDays(returnedAt); days > 0 {
		fine := &finemodel.Fine{
			LendingID:   lending.ID,
			MemberID:    lending.MemberID,
			ItemBarcode: lending.ItemBarcode,
			DaysOverdue: days,
			Amount:      s.fines.Assess(days),
			AssessedAt:  returnedAt,
		}
		if err := s.fines.RecordFine(ctx, fine); err != nil {
			return nil, err
		}
		fineResp := fine.ToResponse()
		result.Fine = &fineResp
	}

	return result, nil
}

func (s *LendingService) Renew(ctx context.Context, req model.RenewRequest) (*model.LendingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lending, err := s.repo.OpenByBarcode(ctx, req.ItemBarcode)
	if err != nil {
		return nil, err
	}
	if lending.MemberID != req.MemberID {
		return nil, model.ErrNotBorrower
	}

	newDue := lending.DueDate.AddDate(0, 0, s.renewalPeriodDays)
	if err := s.repo.ExtendDueDate(ctx, lending.ID, newDue); err != nil {
		return nil, err
	}
	lending.DueDate = newDue
	lending.Renewals++

	resp := lending.ToResponse()
	return &resp, nil
}

func (s *LendingService) OpenLending(ctx context.Context, barcode string) (*model.LendingResponse, error) {
	lending, err := s.repo.OpenByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	resp := lending.ToResponse()
	return &resp, nil
}

func (s *LendingService) ListLendings(ctx context.Context) ([]model.LendingResponse, error) {
	lendings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(lendings), nil
}

func (s *LendingService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.LendingResponse, error) {
	lendings, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(lendings), nil
}

func (s *LendingService) ListOverdue(ctx context.Context, asOf time.Time) ([]model.LendingResponse, error) {
	lendings, err := s.repo.ListOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(lendings), nil
}

func (s *LendingService) releaseSlot(ctx context.Context, memberID uuid.UUID) {
	if err := s.members.ReleaseLoanSlot(ctx, memberID); err != nil {
		log.Error().Err(err).Str("member_id", memberID.String()).Msg("failed to release loan slot during checkout compensation")
	}
}
