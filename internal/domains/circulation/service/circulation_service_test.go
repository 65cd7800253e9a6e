package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogrepo "library-backend/internal/domains/catalog/repository"
	catalogsvc "library-backend/internal/domains/catalog/service"
	finemodel "library-backend/internal/domains/fine/model"
	finerepo "library-backend/internal/domains/fine/repository"
	finesvc "library-backend/internal/domains/fine/service"
	lendingmodel "library-backend/internal/domains/lending/model"
	lendingrepo "library-backend/internal/domains/lending/repository"
	lendingsvc "library-backend/internal/domains/lending/service"
	membermodel "library-backend/internal/domains/member/model"
	memberrepo "library-backend/internal/domains/member/repository"
	membersvc "library-backend/internal/domains/member/service"
	reservationmodel "library-backend/internal/domains/reservation/model"
	reservationrepo "library-backend/internal/domains/reservation/repository"
	reservationsvc "library-backend/internal/domains/reservation/service"
	"library-backend/pkg/jwt"
)

func newDesk(t *testing.T) (ServiceInterface, catalogsvc.ServiceInterface, membersvc.ServiceInterface) {
	t.Helper()

	catalogRepo := catalogrepo.NewMemoryRepository()
	catalog := catalogsvc.NewService(catalogRepo)
	members := membersvc.NewService(memberrepo.NewMemoryRepository(), jwt.NewManager("test-secret", 15), 5)
	reservations := reservationsvc.NewService(reservationrepo.NewMemoryRepository(), catalogRepo, members)
	fines := finesvc.NewService(finerepo.NewMemoryRepository(), decimal.RequireFromString("1.00"))
	lendings := lendingsvc.NewService(lendingrepo.NewMemoryRepository(), catalogRepo, members, reservations, fines, 10, 3)

	return NewService(catalog, lendings, reservations, fines), catalog, members
}

// TestFrontDeskLifecycle walks one copy of a book through its whole life
// at the desk: cataloged, reserved, checked out by the holder, returned
// late, fined, fine settled, and finally written off as lost while the
// stock is adjusted.
func TestFrontDeskLifecycle(t *testing.T) {
	desk, catalog, members := newDesk(t)
	ctx := context.Background()

	book, err := catalog.AddBook(ctx, catalogmodel.CreateBookRequest{
		ISBN:    "9780385504201",
		Title:   "The Da Vinci Code",
		Authors: []string{"Dan Brown"},
	})
	require.NoError(t, err)

	stock, err := desk.AdjustInventory(ctx, book.ID, catalogmodel.AdjustInventoryRequest{
		Quantity:  2,
		Operation: catalogmodel.AdjustOperationIncrease,
	})
	require.NoError(t, err)
	require.Len(t, stock.Barcodes, 2)
	assert.Equal(t, 2, stock.AvailableCopies)
	copyA, copyB := stock.Barcodes[0], stock.Barcodes[1]

	alice, err := members.Register(ctx, membermodel.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
		FullName: "Alice",
	})
	require.NoError(t, err)
	bob, err := members.Register(ctx, membermodel.RegisterRequest{
		Email:    "bob@example.com",
		Password: "correct-horse-battery",
		FullName: "Bob",
	})
	require.NoError(t, err)

	// Alice places a hold on copy A; Bob can no longer take it.
	_, err = desk.Reserve(ctx, reservationmodel.ReserveRequest{MemberID: alice.ID, ItemBarcode: copyA})
	require.NoError(t, err)

	_, err = desk.Checkout(ctx, lendingmodel.CheckoutRequest{MemberID: bob.ID, ItemBarcode: copyA})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)

	lending, err := desk.Checkout(ctx, lendingmodel.CheckoutRequest{MemberID: alice.ID, ItemBarcode: copyA})
	require.NoError(t, err)

	summary, err := desk.ItemSummary(ctx, copyA)
	require.NoError(t, err)
	assert.Equal(t, catalogmodel.ItemStatusLoaned.String(), summary.Item.Status)
	require.NotNil(t, summary.Lending)
	assert.Equal(t, alice.ID, summary.Lending.MemberID)
	assert.Equal(t, reservationmodel.StatusNone, summary.Reservation)

	// Alice brings the copy back four days past due; the desk settles
	// the return for that date and raises a fine.
	ref := lending.DueDate.Add(4 * 24 * time.Hour)
	result, err := desk.ReturnItem(ctx, lendingmodel.ReturnRequest{ItemBarcode: copyA, ReferenceDate: &ref})
	require.NoError(t, err)
	require.NotNil(t, result.Fine)
	assert.Equal(t, 4, result.Fine.DaysOverdue)
	assert.True(t, result.Fine.Amount.Equal(decimal.RequireFromString("4.00")))
	assert.Equal(t, finemodel.FineStatusUnpaid, result.Fine.Status)

	paid, err := desk.PayFine(ctx, copyA)
	require.NoError(t, err)
	assert.Equal(t, finemodel.FineStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = desk.PayFine(ctx, copyA)
	assert.ErrorIs(t, err, finemodel.ErrNoUnpaidFine)

	// Copy B never comes back from the shelves.
	lost, err := desk.MarkLost(ctx, copyB)
	require.NoError(t, err)
	assert.Equal(t, catalogmodel.ItemStatusLost.String(), lost.Status)

	// Weed the returned copy; the lost one is all that remains.
	removed, err := desk.AdjustInventory(ctx, book.ID, catalogmodel.AdjustInventoryRequest{
		Quantity:  1,
		Operation: catalogmodel.AdjustOperationDecrease,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{copyA}, removed.Barcodes)
	assert.Equal(t, 1, removed.TotalCopies)
	assert.Equal(t, 0, removed.AvailableCopies)

	_, err = desk.ItemSummary(ctx, copyA)
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotFound)
}

func TestFrontDeskCancelReservation(t *testing.T) {
	desk, catalog, members := newDesk(t)
	ctx := context.Background()

	book, err := catalog.AddBook(ctx, catalogmodel.CreateBookRequest{
		ISBN:    "9780385504201",
		Title:   "The Da Vinci Code",
		Authors: []string{"Dan Brown"},
	})
	require.NoError(t, err)

	stock, err := desk.AdjustInventory(ctx, book.ID, catalogmodel.AdjustInventoryRequest{
		Quantity:  1,
		Operation: catalogmodel.AdjustOperationIncrease,
	})
	require.NoError(t, err)
	barcode := stock.Barcodes[0]

	alice, err := members.Register(ctx, membermodel.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
		FullName: "Alice",
	})
	require.NoError(t, err)

	_, err = desk.Reserve(ctx, reservationmodel.ReserveRequest{MemberID: alice.ID, ItemBarcode: barcode})
	require.NoError(t, err)

	canceled, err := desk.CancelReservation(ctx, reservationmodel.CancelRequest{MemberID: alice.ID, ItemBarcode: barcode})
	require.NoError(t, err)
	assert.Equal(t, reservationmodel.StatusCanceled, canceled.Status)

	summary, err := desk.ItemSummary(ctx, barcode)
	require.NoError(t, err)
	assert.Equal(t, catalogmodel.ItemStatusAvailable.String(), summary.Item.Status)
	assert.Nil(t, summary.Lending)
	assert.Equal(t, reservationmodel.StatusNone, summary.Reservation)
}
