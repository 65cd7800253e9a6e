package model

import (
	"time"

	"github.com/google/uuid"
)

// === ACCOUNT STATUS ===

// AccountStatus represents the lifecycle state of a member account
type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "ACTIVE"
	AccountStatusClosed      AccountStatus = "CLOSED"
	AccountStatusCanceled    AccountStatus = "CANCELED"
	AccountStatusBlacklisted AccountStatus = "BLACKLISTED"
)

// IsValid checks whether the status is a known account status
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusClosed, AccountStatusCanceled, AccountStatusBlacklisted:
		return true
	}
	return false
}

func (s AccountStatus) String() string {
	return string(s)
}

// === ROLES ===

const (
	RoleMember    = "member"
	RoleLibrarian = "librarian"
)

// === MEMBER ===

// Member is a registered library account. OutstandingLoans counts open
// lendings and is maintained atomically by the repository so the borrow
// limit holds under concurrent checkouts.
type Member struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	Email            string        `json:"email" db:"email"`
	PasswordHash     string        `json:"-" db:"password_hash"`
	FullName         string        `json:"full_name" db:"full_name"`
	Phone            string        `json:"phone" db:"phone"`
	Address          string        `json:"address" db:"address"`
	Role             string        `json:"role" db:"role"`
	Status           AccountStatus `json:"status" db:"status"`
	OutstandingLoans int           `json:"outstanding_loans" db:"outstanding_loans"`
	RegisteredAt     time.Time     `json:"registered_at" db:"registered_at"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// Eligible reports whether the member may borrow or reserve items.
// Only ACTIVE accounts are eligible.
func (m *Member) Eligible() bool {
	return m.Status == AccountStatusActive
}
