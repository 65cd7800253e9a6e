package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// === REQUEST DTOs ===

// RegisterRequest is the payload for creating a member account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Validate validates the register request
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.Address, validation.Length(0, 500)),
	)
}

// LoginRequest is the payload for authenticating a member
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateStatusRequest changes a member account status
type UpdateStatusRequest struct {
	Status AccountStatus `json:"status"`
}

// Validate validates the status update request
func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(func(value interface{}) error {
			status, _ := value.(AccountStatus)
			if !status.IsValid() {
				return ErrInvalidStatus
			}
			return nil
		})),
	)
}

// === RESPONSE DTOs ===

// MemberResponse is the API representation of a member account
type MemberResponse struct {
	ID               uuid.UUID     `json:"id"`
	Email            string        `json:"email"`
	FullName         string        `json:"full_name"`
	Phone            string        `json:"phone,omitempty"`
	Address          string        `json:"address,omitempty"`
	Role             string        `json:"role"`
	Status           AccountStatus `json:"status"`
	OutstandingLoans int           `json:"outstanding_loans"`
	RegisteredAt     time.Time     `json:"registered_at"`
}

// LoginResponse carries the issued tokens and the member profile
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Member       MemberResponse `json:"member"`
}

// ToResponse converts a Member to its API representation
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:               m.ID,
		Email:            m.Email,
		FullName:         m.FullName,
		Phone:            m.Phone,
		Address:          m.Address,
		Role:             m.Role,
		Status:           m.Status,
		OutstandingLoans: m.OutstandingLoans,
		RegisteredAt:     m.RegisteredAt,
	}
}

// ToResponseList converts a slice of members
func ToResponseList(members []Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, members[i].ToResponse())
	}
	return out
}
