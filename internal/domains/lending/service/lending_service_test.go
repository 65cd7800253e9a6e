package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogrepo "library-backend/internal/domains/catalog/repository"
	finemodel "library-backend/internal/domains/fine/model"
	finerepo "library-backend/internal/domains/fine/repository"
	finesvc "library-backend/internal/domains/fine/service"
	"library-backend/internal/domains/lending/model"
	"library-backend/internal/domains/lending/repository"
	membermodel "library-backend/internal/domains/member/model"
	memberrepo "library-backend/internal/domains/member/repository"
	membersvc "library-backend/internal/domains/member/service"
	reservationmodel "library-backend/internal/domains/reservation/model"
	reservationrepo "library-backend/internal/domains/reservation/repository"
	reservationsvc "library-backend/internal/domains/reservation/service"
	"library-backend/pkg/jwt"
)

const (
	testLoanPeriodDays    = 10
	testRenewalPeriodDays = 3
	testBorrowLimit       = 5
)

type fixture struct {
	svc          *LendingService
	catalog      catalogrepo.RepositoryInterface
	members      membersvc.ServiceInterface
	reservations reservationsvc.ServiceInterface
	fines        finesvc.ServiceInterface
	bookID       uuid.UUID

	mu  sync.Mutex
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := catalogrepo.NewMemoryRepository()
	members := membersvc.NewService(memberrepo.NewMemoryRepository(), jwt.NewManager("test-secret", 15), testBorrowLimit)
	reservations := reservationsvc.NewService(reservationrepo.NewMemoryRepository(), catalog, members)
	fines := finesvc.NewService(finerepo.NewMemoryRepository(), decimal.RequireFromString("1.00"))

	f := &fixture{
		catalog:      catalog,
		members:      members,
		reservations: reservations,
		fines:        fines,
		bookID:       uuid.New(),
		now:          time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	err := catalog.CreateBook(context.Background(), &catalogmodel.Book{
		ID:        f.bookID,
		ISBN:      "9780385504201",
		Title:     "The Da Vinci Code",
		Authors:   []string{"Dan Brown"},
		CreatedAt: f.now,
		UpdatedAt: f.now,
	})
	require.NoError(t, err)
	f.svc = &LendingService{
		repo:              repository.NewMemoryRepository(),
		catalog:           catalog,
		members:           members,
		reservations:      reservations,
		fines:             fines,
		loanPeriodDays:    testLoanPeriodDays,
		renewalPeriodDays: testRenewalPeriodDays,
		now:               f.clock,
	}
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fixture) addMember(t *testing.T, email string) uuid.UUID {
	t.Helper()
	member, err := f.members.Register(context.Background(), membermodel.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		FullName: "Test Member",
	})
	require.NoError(t, err)
	return member.ID
}

func (f *fixture) addItem(t *testing.T, barcode string, status catalogmodel.ItemStatus) {
	t.Helper()
	f.addItemOpts(t, barcode, status, false)
}

func (f *fixture) addItemOpts(t *testing.T, barcode string, status catalogmodel.ItemStatus, referenceOnly bool) {
	t.Helper()
	err := f.catalog.CreateItem(context.Background(), &catalogmodel.BookItem{
		Barcode:         barcode,
		BookID:          f.bookID,
		Status:          status,
		Format:          catalogmodel.ItemFormatPaperback,
		IsReferenceOnly: referenceOnly,
		CreatedAt:       f.clock(),
		UpdatedAt:       f.clock(),
	})
	require.NoError(t, err)
}

func (f *fixture) itemStatus(t *testing.T, barcode string) catalogmodel.ItemStatus {
	t.Helper()
	item, err := f.catalog.GetItem(context.Background(), barcode)
	require.NoError(t, err)
	return item.Status
}

func TestCheckoutHappyPath(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	lending, err := f.svc.Checkout(context.Background(), model.CheckoutRequest{
		MemberID:    memberID,
		ItemBarcode: "ITM-AAA",
	})
	require.NoError(t, err)
	assert.True(t, lending.Open)
	assert.Equal(t, f.clock().AddDate(0, 0, testLoanPeriodDays), lending.DueDate)
	assert.Equal(t, catalogmodel.ItemStatusLoaned, f.itemStatus(t, "ITM-AAA"))

	member, err := f.members.GetMember(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, 1, member.OutstandingLoans)
}

func TestCheckoutRejectsLoanedItemWithoutMutation(t *testing.T) {
	f := newFixture(t)
	first := f.addMember(t, "first@example.com")
	second := f.addMember(t, "second@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: first, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: second, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)

	// The loser must not hold a slot or a ledger entry.
	member, err := f.members.GetMember(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 0, member.OutstandingLoans)

	lendings, err := f.svc.ListByMember(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, lendings)
}

func TestCheckoutRejectsLostItem(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusLost)

	_, err := f.svc.Checkout(context.Background(), model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)
	assert.Equal(t, catalogmodel.ItemStatusLost, f.itemStatus(t, "ITM-AAA"))
}

func TestCheckoutRejectsReferenceOnlyCopy(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItemOpts(t, "ITM-REF", catalogmodel.ItemStatusAvailable, true)

	_, err := f.svc.Checkout(context.Background(), model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-REF"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)
}

func TestCheckoutRejectsUnknownItem(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")

	_, err := f.svc.Checkout(context.Background(), model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-NOPE"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotFound)
}

func TestCheckoutRejectsBlacklistedMember(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	_, err := f.members.UpdateStatus(context.Background(), memberID, membermodel.AccountStatusBlacklisted)
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, membermodel.ErrMemberNotEligible)
	assert.Equal(t, catalogmodel.ItemStatusAvailable, f.itemStatus(t, "ITM-AAA"))
}

func TestReturnOnTimeAssessesNoFine(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	f.advance(9 * 24 * time.Hour)

	result, err := f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	assert.Nil(t, result.Fine)
	assert.False(t, result.Lending.Open)
	assert.Equal(t, catalogmodel.ItemStatusAvailable, f.itemStatus(t, "ITM-AAA"))

	member, err := f.members.GetMember(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, 0, member.OutstandingLoans)
}

func TestReturnThreeDaysLateAssessesFine(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	f.advance(time.Duration(testLoanPeriodDays+3) * 24 * time.Hour)

	result, err := f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	require.NotNil(t, result.Fine)
	assert.Equal(t, 3, result.Fine.DaysOverdue)
	assert.True(t, result.Fine.Amount.Equal(decimal.RequireFromString("3.00")))
	assert.Equal(t, finemodel.FineStatusUnpaid, result.Fine.Status)
}

func TestReturnPartialDayCountsAsFullDay(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	f.advance(time.Duration(testLoanPeriodDays)*24*time.Hour + time.Hour)

	result, err := f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	require.NotNil(t, result.Fine)
	assert.Equal(t, 1, result.Fine.DaysOverdue)
}

func TestReturnWithReferenceDate(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	lending, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	// Settle the return as of five days past due, regardless of wall
	// clock.
	ref := lending.DueDate.Add(5 * 24 * time.Hour)
	result, err := f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: "ITM-AAA", ReferenceDate: &ref})
	require.NoError(t, err)
	require.NotNil(t, result.Fine)
	assert.Equal(t, 5, result.Fine.DaysOverdue)
	assert.True(t, result.Fine.Amount.Equal(decimal.RequireFromString("5.00")))
	require.NotNil(t, result.Lending.ReturnedAt)
	assert.Equal(t, ref, *result.Lending.ReturnedAt)
}

func TestReturnWithoutOpenLending(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	_, err := f.svc.ReturnItem(context.Background(), model.ReturnRequest{ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, model.ErrNoOpenLending)
}

func TestBorrowLimit(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	ctx := context.Background()

	barcodes := []string{"ITM-001", "ITM-002", "ITM-003", "ITM-004", "ITM-005", "ITM-006"}
	for _, barcode := range barcodes {
		f.addItem(t, barcode, catalogmodel.ItemStatusAvailable)
	}

	for i := 0; i < testBorrowLimit; i++ {
		_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: barcodes[i]})
		require.NoError(t, err, "checkout %d", i+1)
	}

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: barcodes[5]})
	assert.ErrorIs(t, err, membermodel.ErrBorrowLimitExceeded)
	// The rejected checkout must not flip the item.
	assert.Equal(t, catalogmodel.ItemStatusAvailable, f.itemStatus(t, barcodes[5]))

	// Returning one copy frees a slot.
	_, err = f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: barcodes[0]})
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: barcodes[5]})
	assert.NoError(t, err)
}

func TestCheckoutReservedItemByHolder(t *testing.T) {
	f := newFixture(t)
	holder := f.addMember(t, "holder@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.reservations.Reserve(ctx, reservationmodel.ReserveRequest{MemberID: holder, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	lending, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: holder, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	assert.True(t, lending.Open)
	assert.Equal(t, catalogmodel.ItemStatusLoaned, f.itemStatus(t, "ITM-AAA"))

	// The hold is consumed.
	status, err := f.reservations.StatusForItem(ctx, "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, reservationmodel.StatusNone, status)
}

func TestCheckoutReservedItemByNonHolder(t *testing.T) {
	f := newFixture(t)
	holder := f.addMember(t, "holder@example.com")
	other := f.addMember(t, "other@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.reservations.Reserve(ctx, reservationmodel.ReserveRequest{MemberID: holder, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: other, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)
	assert.Equal(t, catalogmodel.ItemStatusReserved, f.itemStatus(t, "ITM-AAA"))

	// The hold survives and the loser holds no slot.
	status, err := f.reservations.StatusForItem(ctx, "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, reservationmodel.StatusWaiting, status)

	member, err := f.members.GetMember(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 0, member.OutstandingLoans)
}

func TestConcurrentCheckoutSingleWinner(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	const contenders = 16
	memberIDs := make([]uuid.UUID, contenders)
	for i := range memberIDs {
		memberIDs[i] = f.addMember(t, uuid.NewString()+"@example.com")
	}

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.Checkout(ctx, model.CheckoutRequest{
				MemberID:    memberIDs[i],
				ItemBarcode: "ITM-AAA",
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, catalogmodel.ItemStatusLoaned, f.itemStatus(t, "ITM-AAA"))
}

func TestRenewExtendsDueDate(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	lending, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	renewed, err := f.svc.Renew(ctx, model.RenewRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	assert.Equal(t, lending.DueDate.AddDate(0, 0, testRenewalPeriodDays), renewed.DueDate)
	assert.Equal(t, 1, renewed.Renewals)
}

func TestRenewRejectsNonBorrower(t *testing.T) {
	f := newFixture(t)
	borrower := f.addMember(t, "borrower@example.com")
	other := f.addMember(t, "other@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: borrower, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	_, err = f.svc.Renew(ctx, model.RenewRequest{MemberID: other, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, model.ErrNotBorrower)
}

func TestListOverdue(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	f.addItem(t, "ITM-BBB", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	f.advance(5 * 24 * time.Hour)
	_, err = f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-BBB"})
	require.NoError(t, err)

	// Twelve days in, the first loan is past its ten-day window, the
	// second is not.
	asOf := f.clock().Add(7 * 24 * time.Hour)
	overdue, err := f.svc.ListOverdue(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "ITM-AAA", overdue[0].ItemBarcode)
}

// flakyCloseRepo fails the first Close call and delegates afterwards.
type flakyCloseRepo struct {
	repository.RepositoryInterface
	failures int
}

func (r *flakyCloseRepo) Close(ctx context.Context, id uuid.UUID, returnedAt time.Time) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("ledger write failed")
	}
	return r.RepositoryInterface.Close(ctx, id, returnedAt)
}

func TestReturnRevertsItemWhenLedgerCloseFails(t *testing.T) {
	f := newFixture(t)
	alice := f.addMember(t, "alice@example.com")
	bob := f.addMember(t, "bob@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: alice, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	f.svc.repo = &flakyCloseRepo{RepositoryInterface: f.svc.repo, failures: 1}

	_, err = f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: "ITM-AAA"})
	require.Error(t, err)

	// The failed return must leave the world as if it never happened:
	// the copy stays LOANED and the lending stays open, so nobody else
	// can borrow the same barcode.
	assert.Equal(t, catalogmodel.ItemStatusLoaned, f.itemStatus(t, "ITM-AAA"))
	open, err := f.svc.OpenLending(ctx, "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, alice, open.MemberID)

	_, err = f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: bob, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)

	// A retry goes through once the ledger recovers.
	result, err := f.svc.ReturnItem(ctx, model.ReturnRequest{ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	assert.False(t, result.Lending.Open)
	assert.Equal(t, catalogmodel.ItemStatusAvailable, f.itemStatus(t, "ITM-AAA"))
}

// conflictingCatalog makes the next loan transition lose its
// compare-and-set, as if a concurrent writer got there first.
type conflictingCatalog struct {
	catalogrepo.RepositoryInterface
	conflicts int
}

func (r *conflictingCatalog) UpdateItemStatus(ctx context.Context, barcode string, expected, next catalogmodel.ItemStatus) error {
	if next == catalogmodel.ItemStatusLoaned && r.conflicts > 0 {
		r.conflicts--
		return catalogmodel.NewStatusConflictError(barcode, expected, next)
	}
	return r.RepositoryInterface.UpdateItemStatus(ctx, barcode, expected, next)
}

func TestCheckoutLostRaceKeepsConflictInChain(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	f.svc.catalog = &conflictingCatalog{RepositoryInterface: f.svc.catalog, conflicts: 1}

	_, err := f.svc.Checkout(ctx, model.CheckoutRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotAvailable)
	assert.ErrorIs(t, err, catalogmodel.ErrStatusConflict)

	// The loser's slot was compensated.
	member, err := f.members.GetMember(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, 0, member.OutstandingLoans)
}
