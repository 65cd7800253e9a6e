package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/repository"
	"library-backend/pkg/jwt"
)

// MemberService implements member registration, authentication and
// account lifecycle management.
type MemberService struct {
	repo        repository.RepositoryInterface
	jwtManager  *jwt.Manager
	borrowLimit int
	now         func() time.Time
}

// NewService creates a new member service
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager, borrowLimit int) ServiceInterface {
	return &MemberService{
		repo:        repo,
		jwtManager:  jwtManager,
		borrowLimit: borrowLimit,
		now:         time.Now,
	}
}

func (s *MemberService) Register(ctx context.Context, req model.RegisterRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &model.Member{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         model.RoleMember,
		Status:       model.AccountStatusActive,
		RegisteredAt: s.now(),
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	resp := member.ToResponse()
	return &resp, nil
}

func (s *MemberService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if model.IsNotFoundError(err) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(member.ID.String(), member.Email, member.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(member.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       member.ToResponse(),
	}, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*model.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := member.ToResponse()
	return &resp, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]model.MemberResponse, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(members), nil
}

func (s *MemberService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) (*model.MemberResponse, error) {
	if !status.IsValid() {
		return nil, model.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.GetMember(ctx, id)
}

func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// EnsureEligible verifies the account may participate in circulation
// without consuming a loan slot. Reservations use this check.
func (s *MemberService) EnsureEligible(ctx context.Context, id uuid.UUID) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !member.Eligible() {
		return model.NewMemberNotEligibleError(member.Status)
	}
	return nil
}

func (s *MemberService) ClaimLoanSlot(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementOutstanding(ctx, id, s.borrowLimit)
}

func (s *MemberService) ReleaseLoanSlot(ctx context.Context, id uuid.UUID) error {
	return s.repo.DecrementOutstanding(ctx, id)
}
