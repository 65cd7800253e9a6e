package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// === SENTINEL ERRORS ===

var (
	ErrLendingNotFound = errors.New("lending not found")
	ErrNoOpenLending   = errors.New("no open lending for this item")
	ErrNotBorrower     = errors.New("lending belongs to another member")
)

// === ERROR CONSTRUCTORS ===

// NewLendingNotFoundError wraps ErrLendingNotFound with the lending ID
func NewLendingNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrLendingNotFound, id)
}

// NewNoOpenLendingError wraps ErrNoOpenLending with the item barcode
func NewNoOpenLendingError(barcode string) error {
	return fmt.Errorf("%w: %s", ErrNoOpenLending, barcode)
}

// === ERROR CLASSIFIERS ===

// IsNotFoundError checks if the error is a lending not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrLendingNotFound) || errors.Is(err, ErrNoOpenLending)
}
