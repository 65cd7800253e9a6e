package model

import (
	"time"

	"github.com/google/uuid"
)

// === RESERVATION STATUS ===

// ReservationStatus tracks the lifecycle of a hold on a book item
type ReservationStatus string

const (
	// StatusWaiting is an active hold: the item is set aside for the member.
	StatusWaiting ReservationStatus = "WAITING"
	// StatusPending marks a hold whose item is ready for pickup notice.
	StatusPending ReservationStatus = "PENDING"
	// StatusCompleted means the holder checked the item out.
	StatusCompleted ReservationStatus = "COMPLETED"
	// StatusCanceled means the hold was released before checkout.
	StatusCanceled ReservationStatus = "CANCELED"
	// StatusNone is the reported status when no reservation exists.
	StatusNone ReservationStatus = "NONE"
)

// IsValid checks whether the status is a known reservation status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusPending, StatusCompleted, StatusCanceled, StatusNone:
		return true
	}
	return false
}

// Active reports whether the reservation still holds the item
func (s ReservationStatus) Active() bool {
	return s == StatusWaiting || s == StatusPending
}

func (s ReservationStatus) String() string {
	return string(s)
}

// === RESERVATION ===

// Reservation is a hold placed by a member on a specific book item.
// An item carries at most one active reservation at a time.
type Reservation struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	ItemBarcode string            `json:"item_barcode" db:"item_barcode"`
	MemberID    uuid.UUID         `json:"member_id" db:"member_id"`
	Status      ReservationStatus `json:"status" db:"status"`
	ReservedAt  time.Time         `json:"reserved_at" db:"reserved_at"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}
