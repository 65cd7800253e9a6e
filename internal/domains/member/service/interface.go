package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

// ServiceInterface defines member business logic operations.
//
// ClaimLoanSlot and ReleaseLoanSlot are used by the lending service to
// hold one borrow-limit slot per open lending.
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.MemberResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetMember(ctx context.Context, id uuid.UUID) (*model.MemberResponse, error)
	ListMembers(ctx context.Context) ([]model.MemberResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) (*model.MemberResponse, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
	EnsureEligible(ctx context.Context, id uuid.UUID) error
	ClaimLoanSlot(ctx context.Context, id uuid.UUID) error
	ReleaseLoanSlot(ctx context.Context, id uuid.UUID) error
}
