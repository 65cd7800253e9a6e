package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ===================================
// DOMAIN ERRORS
// ===================================

var (
	// ErrBookNotFound is returned when a catalog entry is not found
	ErrBookNotFound = errors.New("book not found")

	// ErrItemNotFound is returned when no copy exists for a barcode
	ErrItemNotFound = errors.New("book item not found")

	// ErrDuplicateBarcode is returned when creating a copy with a taken barcode
	ErrDuplicateBarcode = errors.New("barcode already exists")

	// ErrDuplicateISBN is returned when a catalog entry with the ISBN already exists
	ErrDuplicateISBN = errors.New("book with this ISBN already exists")

	// ErrStatusConflict is returned when a compare-and-set status update loses
	// a race with a concurrent operation. Transient; the caller may re-fetch
	// and retry.
	ErrStatusConflict = errors.New("item status was changed by a concurrent operation")

	// ErrInvalidTransition is returned when the current status does not permit
	// the requested move
	ErrInvalidTransition = errors.New("invalid item status transition")

	// ErrItemNotAvailable is returned when a copy cannot be checked out
	ErrItemNotAvailable = errors.New("book item is not available")

	// ErrItemNotReservable is returned when a copy cannot be reserved
	ErrItemNotReservable = errors.New("book item is not reservable")

	// ErrNotEnoughCopies is returned when removing more copies than are AVAILABLE
	ErrNotEnoughCopies = errors.New("not enough available copies to remove")

	// ErrInvalidQuantity is returned for a zero or negative copy count
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ===================================
// ERROR HELPERS
// ===================================

// NewBookNotFoundError creates a detailed not found error
func NewBookNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrBookNotFound, id)
}

// NewItemNotFoundError creates a detailed not found error for a barcode
func NewItemNotFoundError(barcode string) error {
	return fmt.Errorf("%w: barcode=%s", ErrItemNotFound, barcode)
}

// NewStatusConflictError creates a conflict error with transition details
func NewStatusConflictError(barcode string, expected, next ItemStatus) error {
	return fmt.Errorf("%w: barcode=%s, expected=%s, next=%s", ErrStatusConflict, barcode, expected, next)
}

// NewInvalidTransitionError creates an error naming the rejected move
func NewInvalidTransitionError(from, to ItemStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// IsNotFoundError checks if error is a catalog not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookNotFound) || errors.Is(err, ErrItemNotFound)
}

// IsConflictError checks if error is a lost compare-and-set race
func IsConflictError(err error) bool {
	return errors.Is(err, ErrStatusConflict)
}

// IsTransitionError checks if error is a rejected state machine move
func IsTransitionError(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrItemNotAvailable) ||
		errors.Is(err, ErrItemNotReservable)
}
