package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/repository"
	"library-backend/pkg/jwt"
)

const testBorrowLimit = 5

func newTestService(t *testing.T) ServiceInterface {
	t.Helper()
	repo := repository.NewMemoryRepository()
	manager := jwt.NewManager("test-secret", 15)
	return NewService(repo, manager, testBorrowLimit)
}

func registerTestMember(t *testing.T, svc ServiceInterface, email string) *model.MemberResponse {
	t.Helper()
	member, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	return member
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	member := registerTestMember(t, svc, "ada@example.com")
	assert.Equal(t, model.AccountStatusActive, member.Status)
	assert.Equal(t, model.RoleMember, member.Role)
	assert.Equal(t, 0, member.OutstandingLoans)

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, member.ID, login.Member.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t)
	registerTestMember(t, svc, "ada@example.com")

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	registerTestMember(t, svc, "ada@example.com")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "ada@example.com",
		Password: "another-password",
		FullName: "Someone Else",
	})
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestClaimLoanSlotEnforcesLimit(t *testing.T) {
	svc := newTestService(t)
	member := registerTestMember(t, svc, "ada@example.com")
	ctx := context.Background()

	for i := 0; i < testBorrowLimit; i++ {
		require.NoError(t, svc.ClaimLoanSlot(ctx, member.ID), "slot %d", i+1)
	}

	err := svc.ClaimLoanSlot(ctx, member.ID)
	assert.ErrorIs(t, err, model.ErrBorrowLimitExceeded)

	// Releasing one slot frees capacity again.
	require.NoError(t, svc.ReleaseLoanSlot(ctx, member.ID))
	assert.NoError(t, svc.ClaimLoanSlot(ctx, member.ID))
}

func TestClaimLoanSlotRejectsBlacklistedMember(t *testing.T) {
	svc := newTestService(t)
	member := registerTestMember(t, svc, "ada@example.com")
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, member.ID, model.AccountStatusBlacklisted)
	require.NoError(t, err)

	err = svc.ClaimLoanSlot(ctx, member.ID)
	assert.ErrorIs(t, err, model.ErrMemberNotEligible)

	err = svc.EnsureEligible(ctx, member.ID)
	assert.ErrorIs(t, err, model.ErrMemberNotEligible)

	// Unblocking restores circulation rights.
	_, err = svc.UpdateStatus(ctx, member.ID, model.AccountStatusActive)
	require.NoError(t, err)
	assert.NoError(t, svc.EnsureEligible(ctx, member.ID))
}

func TestDeleteMemberRejectsOpenLoans(t *testing.T) {
	svc := newTestService(t)
	member := registerTestMember(t, svc, "ada@example.com")
	ctx := context.Background()

	require.NoError(t, svc.ClaimLoanSlot(ctx, member.ID))

	err := svc.DeleteMember(ctx, member.ID)
	assert.ErrorIs(t, err, model.ErrMemberHasOpenLoans)

	require.NoError(t, svc.ReleaseLoanSlot(ctx, member.ID))
	require.NoError(t, svc.DeleteMember(ctx, member.ID))

	_, err = svc.GetMember(ctx, member.ID)
	assert.ErrorIs(t, err, model.ErrMemberNotFound)
}

func TestReleaseLoanSlotAtZeroIsNoOp(t *testing.T) {
	svc := newTestService(t)
	member := registerTestMember(t, svc, "ada@example.com")
	ctx := context.Background()

	// Releasing without a claim leaves the counter alone instead of
	// erroring, so compensation paths can call it unconditionally.
	require.NoError(t, svc.ReleaseLoanSlot(ctx, member.ID))

	got, err := svc.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OutstandingLoans)

	assert.ErrorIs(t, svc.ReleaseLoanSlot(ctx, uuid.New()), model.ErrMemberNotFound)
}

func TestListMembers(t *testing.T) {
	svc := newTestService(t)
	for i := 0; i < 3; i++ {
		registerTestMember(t, svc, fmt.Sprintf("member%d@example.com", i))
	}

	members, err := svc.ListMembers(context.Background())
	require.NoError(t, err)
	assert.Len(t, members, 3)
}
