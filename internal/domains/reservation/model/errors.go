package model

import (
	"errors"
	"fmt"
)

// === SENTINEL ERRORS ===

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrNoActiveReservation  = errors.New("no active reservation for this item")
	ErrNotReservationHolder = errors.New("reservation is held by another member")
)

// === ERROR CONSTRUCTORS ===

// NewNoActiveReservationError wraps ErrNoActiveReservation with the barcode
func NewNoActiveReservationError(barcode string) error {
	return fmt.Errorf("%w: %s", ErrNoActiveReservation, barcode)
}

// === ERROR CLASSIFIERS ===

// IsNotFoundError checks if the error is a reservation not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrNoActiveReservation)
}
