package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/fine/model"
	"library-backend/internal/domains/fine/repository"
)

// FineService implements fine assessment and settlement.
type FineService struct {
	repo      repository.RepositoryInterface
	dailyRate decimal.Decimal
	now       func() time.Time
}

// NewService creates a new fine service
func NewService(repo repository.RepositoryInterface, dailyRate decimal.Decimal) ServiceInterface {
	return &FineService{
		repo:      repo,
		dailyRate: dailyRate,
		now:       time.Now,
	}
}

// Assess computes the fine amount for the given number of overdue days.
// Zero or negative days assess to zero.
func (s *FineService) Assess(daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}
	return s.dailyRate.Mul(decimal.NewFromInt(int64(daysOverdue)))
}

func (s *FineService) RecordFine(ctx context.Context, fine *model.Fine) error {
	if fine.ID == uuid.Nil {
		fine.ID = uuid.New()
	}
	if fine.Status == "" {
		fine.Status = model.FineStatusUnpaid
	}
	if fine.AssessedAt.IsZero() {
		fine.AssessedAt = s.now()
	}
	return s.repo.Create(ctx, fine)
}

// PayByBarcode settles the most recently assessed unpaid fine for the
// item identified by barcode.
func (s *FineService) PayByBarcode(ctx context.Context, barcode string) (*model.FineResponse, error) {
	fine, err := s.repo.LatestUnpaidByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	paidAt := s.now()
	if err := s.repo.MarkPaid(ctx, fine.ID, paidAt); err != nil {
		return nil, err
	}
	fine.Status = model.FineStatusPaid
	fine.PaidAt = &paidAt

	resp := fine.ToResponse()
	return &resp, nil
}

func (s *FineService) ListFines(ctx context.Context) ([]model.FineResponse, error) {
	fines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(fines), nil
}

func (s *FineService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.FineResponse, error) {
	fines, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(fines), nil
}

func (s *FineService) ListUnpaidByMember(ctx context.Context, memberID uuid.UUID) ([]model.FineResponse, error) {
	fines, err := s.repo.ListUnpaidByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(fines), nil
}
