package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// === SENTINEL ERRORS ===

var (
	ErrFineNotFound = errors.New("fine not found")
	ErrNoUnpaidFine = errors.New("no unpaid fine for this item")
	ErrFineAlreadyPaid = errors.New("fine is already paid")
)

// === ERROR CONSTRUCTORS ===

// NewFineNotFoundError wraps ErrFineNotFound with the fine ID
func NewFineNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrFineNotFound, id)
}

// NewNoUnpaidFineError wraps ErrNoUnpaidFine with the item barcode
func NewNoUnpaidFineError(barcode string) error {
	return fmt.Errorf("%w: %s", ErrNoUnpaidFine, barcode)
}

// === ERROR CLASSIFIERS ===

// IsNotFoundError checks if the error is a fine not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrFineNotFound) || errors.Is(err, ErrNoUnpaidFine)
}
