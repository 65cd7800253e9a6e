package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/fine/model"
	"library-backend/internal/domains/fine/repository"
)

func newTestService(rate string) *FineService {
	dailyRate, _ := decimal.NewFromString(rate)
	return &FineService{
		repo:      repository.NewMemoryRepository(),
		dailyRate: dailyRate,
		now:       time.Now,
	}
}

func TestAssess(t *testing.T) {
	svc := newTestService("1.00")

	assert.True(t, svc.Assess(0).IsZero())
	assert.True(t, svc.Assess(-2).IsZero())
	assert.True(t, svc.Assess(3).Equal(decimal.RequireFromString("3.00")))

	halfRate := newTestService("0.50")
	assert.True(t, halfRate.Assess(7).Equal(decimal.RequireFromString("3.50")))
}

func TestPayByBarcodeSettlesMostRecentUnpaid(t *testing.T) {
	svc := newTestService("1.00")
	ctx := context.Background()
	memberID := uuid.New()

	older := &model.Fine{
		LendingID:   uuid.New(),
		MemberID:    memberID,
		ItemBarcode: "ITM-AAA",
		DaysOverdue: 2,
		Amount:      svc.Assess(2),
		AssessedAt:  time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, svc.RecordFine(ctx, older))

	newer := &model.Fine{
		LendingID:   uuid.New(),
		MemberID:    memberID,
		ItemBarcode: "ITM-AAA",
		DaysOverdue: 5,
		Amount:      svc.Assess(5),
		AssessedAt:  time.Now(),
	}
	require.NoError(t, svc.RecordFine(ctx, newer))

	paid, err := svc.PayByBarcode(ctx, "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, paid.ID)
	assert.Equal(t, model.FineStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	// The older fine is still outstanding and is next in line.
	paid, err = svc.PayByBarcode(ctx, "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, older.ID, paid.ID)

	_, err = svc.PayByBarcode(ctx, "ITM-AAA")
	assert.ErrorIs(t, err, model.ErrNoUnpaidFine)
}

func TestPayByBarcodeNoUnpaidFine(t *testing.T) {
	svc := newTestService("1.00")

	_, err := svc.PayByBarcode(context.Background(), "ITM-NOTHING")
	assert.ErrorIs(t, err, model.ErrNoUnpaidFine)
}

func TestListByMember(t *testing.T) {
	svc := newTestService("1.00")
	ctx := context.Background()
	memberID := uuid.New()

	require.NoError(t, svc.RecordFine(ctx, &model.Fine{
		LendingID:   uuid.New(),
		MemberID:    memberID,
		ItemBarcode: "ITM-AAA",
		DaysOverdue: 1,
		Amount:      svc.Assess(1),
	}))
	require.NoError(t, svc.RecordFine(ctx, &model.Fine{
		LendingID:   uuid.New(),
		MemberID:    uuid.New(),
		ItemBarcode: "ITM-BBB",
		DaysOverdue: 1,
		Amount:      svc.Assess(1),
	}))

	fines, err := svc.ListByMember(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, fines, 1)
	assert.Equal(t, "ITM-AAA", fines[0].ItemBarcode)

	all, err := svc.ListFines(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListUnpaidByMember(t *testing.T) {
	svc := newTestService("1.00")
	ctx := context.Background()
	memberID := uuid.New()

	require.NoError(t, svc.RecordFine(ctx, &model.Fine{
		LendingID:   uuid.New(),
		MemberID:    memberID,
		ItemBarcode: "ITM-AAA",
		DaysOverdue: 2,
		Amount:      svc.Assess(2),
	}))
	require.NoError(t, svc.RecordFine(ctx, &model.Fine{
		LendingID:   uuid.New(),
		MemberID:    memberID,
		ItemBarcode: "ITM-BBB",
		DaysOverdue: 1,
		Amount:      svc.Assess(1),
	}))

	_, err := svc.PayByBarcode(ctx, "ITM-AAA")
	require.NoError(t, err)

	unpaid, err := svc.ListUnpaidByMember(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, "ITM-BBB", unpaid[0].ItemBarcode)

	all, err := svc.ListByMember(ctx, memberID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
