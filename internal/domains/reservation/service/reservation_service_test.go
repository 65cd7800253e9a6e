package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogrepo "library-backend/internal/domains/catalog/repository"
	membermodel "library-backend/internal/domains/member/model"
	memberrepo "library-backend/internal/domains/member/repository"
	membersvc "library-backend/internal/domains/member/service"
	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/repository"
	"library-backend/pkg/jwt"
)

type fixture struct {
	svc     ServiceInterface
	catalog catalogrepo.RepositoryInterface
	members membersvc.ServiceInterface
	bookID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := catalogrepo.NewMemoryRepository()
	members := membersvc.NewService(memberrepo.NewMemoryRepository(), jwt.NewManager("test-secret", 15), 5)
	f := &fixture{
		svc:     NewService(repository.NewMemoryRepository(), catalog, members),
		catalog: catalog,
		members: members,
		bookID:  uuid.New(),
	}
	now := time.Now()
	err := catalog.CreateBook(context.Background(), &catalogmodel.Book{
		ID:        f.bookID,
		ISBN:      "9780385504201",
		Title:     "The Da Vinci Code",
		Authors:   []string{"Dan Brown"},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return f
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
	now := time.Now()
	err := f.catalog.CreateItem(context.Background(), &catalogmodel.BookItem{
		Barcode:   barcode,
		BookID:    f.bookID,
		Status:    status,
		Format:    catalogmodel.ItemFormatPaperback,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func (f *fixture) itemStatus(t *testing.T, barcode string) catalogmodel.ItemStatus {
	t.Helper()
	item, err := f.catalog.GetItem(context.Background(), barcode)
	require.NoError(t, err)
	return item.Status
}

func TestReserveFlipsItemToReserved(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	reservation, err := f.svc.Reserve(context.Background(), model.ReserveRequest{
		MemberID:    memberID,
		ItemBarcode: "ITM-AAA",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaiting, reservation.Status)
	assert.Equal(t, catalogmodel.ItemStatusReserved, f.itemStatus(t, "ITM-AAA"))

	status, err := f.svc.StatusForItem(context.Background(), "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaiting, status)
}

func TestReserveRejectsSecondHold(t *testing.T) {
	f := newFixture(t)
	first := f.addMember(t, "first@example.com")
	second := f.addMember(t, "second@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	_, err := f.svc.Reserve(context.Background(), model.ReserveRequest{MemberID: first, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	_, err = f.svc.Reserve(context.Background(), model.ReserveRequest{MemberID: second, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotReservable)
}

func TestReserveRejectsLoanedItem(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusLoaned)

	_, err := f.svc.Reserve(context.Background(), model.ReserveRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, catalogmodel.ErrItemNotReservable)
}

func TestReserveRejectsIneligibleMemberWithoutTouchingItem(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	_, err := f.members.UpdateStatus(context.Background(), memberID, membermodel.AccountStatusBlacklisted)
	require.NoError(t, err)

	_, err = f.svc.Reserve(context.Background(), model.ReserveRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, membermodel.ErrMemberNotEligible)
	assert.Equal(t, catalogmodel.ItemStatusAvailable, f.itemStatus(t, "ITM-AAA"))
}

func TestCancelReleasesItem(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	_, err := f.svc.Reserve(context.Background(), model.ReserveRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(context.Background(), model.CancelRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, canceled.Status)
	assert.Equal(t, catalogmodel.ItemStatusAvailable, f.itemStatus(t, "ITM-AAA"))

	status, err := f.svc.StatusForItem(context.Background(), "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, model.StatusNone, status)
}

func TestCancelRejectsNonHolder(t *testing.T) {
	f := newFixture(t)
	holder := f.addMember(t, "holder@example.com")
	other := f.addMember(t, "other@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	_, err := f.svc.Reserve(context.Background(), model.ReserveRequest{MemberID: holder, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), model.CancelRequest{MemberID: other, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, model.ErrNotReservationHolder)
	assert.Equal(t, catalogmodel.ItemStatusReserved, f.itemStatus(t, "ITM-AAA"))
}

func TestClaimForCheckout(t *testing.T) {
	f := newFixture(t)
	holder := f.addMember(t, "holder@example.com")
	other := f.addMember(t, "other@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Reserve(ctx, model.ReserveRequest{MemberID: holder, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	claimed, err := f.svc.ClaimForCheckout(ctx, "ITM-AAA", other)
	require.NoError(t, err)
	assert.False(t, claimed)

	claimed, err = f.svc.ClaimForCheckout(ctx, "ITM-AAA", holder)
	require.NoError(t, err)
	assert.True(t, claimed)

	// The hold is resolved; a second claim finds nothing.
	claimed, err = f.svc.ClaimForCheckout(ctx, "ITM-AAA", holder)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestClaimForCheckoutNoReservation(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)

	claimed, err := f.svc.ClaimForCheckout(context.Background(), "ITM-AAA", memberID)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestCompleteResolvesHoldWithoutTouchingItem(t *testing.T) {
	f := newFixture(t)
	memberID := f.addMember(t, "ada@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Reserve(ctx, model.ReserveRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	completed, err := f.svc.Complete(ctx, model.CompleteRequest{MemberID: memberID, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
	require.NotNil(t, completed.ResolvedAt)

	// Completion resolves the record only; the item stays as it was.
	assert.Equal(t, catalogmodel.ItemStatusReserved, f.itemStatus(t, "ITM-AAA"))

	status, err := f.svc.StatusForItem(ctx, "ITM-AAA")
	require.NoError(t, err)
	assert.Equal(t, model.StatusNone, status)
}

func TestCompleteRejectsNonHolder(t *testing.T) {
	f := newFixture(t)
	holder := f.addMember(t, "holder@example.com")
	other := f.addMember(t, "other@example.com")
	f.addItem(t, "ITM-AAA", catalogmodel.ItemStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Reserve(ctx, model.ReserveRequest{MemberID: holder, ItemBarcode: "ITM-AAA"})
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, model.CompleteRequest{MemberID: other, ItemBarcode: "ITM-AAA"})
	assert.ErrorIs(t, err, model.ErrNotReservationHolder)
}
