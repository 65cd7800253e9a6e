package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// === SENTINEL ERRORS ===

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMemberNotEligible   = errors.New("member account is not eligible for circulation")
	ErrBorrowLimitExceeded = errors.New("member has reached the borrow limit")
	ErrMemberHasOpenLoans  = errors.New("member still has open lendings")
	ErrInvalidStatus       = errors.New("invalid account status")
)

// === ERROR CONSTRUCTORS ===

// NewMemberNotFoundError wraps ErrMemberNotFound with the member ID
func NewMemberNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
}

// NewMemberNotEligibleError wraps ErrMemberNotEligible with the account status
func NewMemberNotEligibleError(status AccountStatus) error {
	return fmt.Errorf("%w: account is %s", ErrMemberNotEligible, status)
}

// NewBorrowLimitExceededError wraps ErrBorrowLimitExceeded with the limit
func NewBorrowLimitExceededError(limit int) error {
	return fmt.Errorf("%w: limit is %d", ErrBorrowLimitExceeded, limit)
}

// === ERROR CLASSIFIERS ===

// IsNotFoundError checks if the error is a member not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrMemberNotFound)
}

// IsEligibilityError checks if the error is an eligibility rejection
func IsEligibilityError(err error) bool {
	return errors.Is(err, ErrMemberNotEligible) || errors.Is(err, ErrBorrowLimitExceeded)
}

// IsConflictError checks if the error is a uniqueness or state conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrMemberHasOpenLoans)
}
