package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// === REQUEST DTOs ===

// ReserveRequest places a hold on a specific book item
type ReserveRequest struct {
	MemberID    uuid.UUID `json:"member_id"`
	ItemBarcode string    `json:"item_barcode"`
}

// Validate validates the reserve request
func (r ReserveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, validation.Required, validation.By(validUUID)),
		validation.Field(&r.ItemBarcode, validation.Required, validation.Length(1, 64)),
	)
}

// CompleteRequest marks the active hold on a book item as fulfilled.
// The item status is untouched; completion without a checkout covers
// manual desk corrections.
type CompleteRequest struct {
	MemberID    uuid.UUID `json:"member_id"`
	ItemBarcode string    `json:"item_barcode"`
}

// Validate validates the complete request
func (r CompleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, validation.Required, validation.By(validUUID)),
		validation.Field(&r.ItemBarcode, validation.Required, validation.Length(1, 64)),
	)
}

// CancelRequest releases the active hold on a book item
type CancelRequest struct {
	MemberID    uuid.UUID `json:"member_id"`
	ItemBarcode string    `json:"item_barcode"`
}

// Validate validates the cancel request
func (r CancelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, validation.Required, validation.By(validUUID)),
		validation.Field(&r.ItemBarcode, validation.Required, validation.Length(1, 64)),
	)
}

func validUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.ErrRequired
	}
	return nil
}

// === RESPONSE DTOs ===

// ReservationResponse is the API representation of a reservation
type ReservationResponse struct {
	ID          uuid.UUID         `json:"id"`
	ItemBarcode string            `json:"item_barcode"`
	MemberID    uuid.UUID         `json:"member_id"`
	Status      ReservationStatus `json:"status"`
	ReservedAt  time.Time         `json:"reserved_at"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
}

// ToResponse converts a Reservation to its API representation
func (r *Reservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		ItemBarcode: r.ItemBarcode,
		MemberID:    r.MemberID,
		Status:      r.Status,
		ReservedAt:  r.ReservedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

// ToResponseList converts a slice of reservations
func ToResponseList(reservations []Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, reservations[i].ToResponse())
	}
	return out
}
