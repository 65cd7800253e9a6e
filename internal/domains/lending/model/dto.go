package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	finemodel "library-backend/internal/domains/fine/model"
)

// === REQUEST DTOs ===

// CheckoutRequest borrows a specific book item for a member
type CheckoutRequest struct {
	MemberID    uuid.UUID `json:"member_id"`
	ItemBarcode string    `json:"item_barcode"`
}

// Validate validates the checkout request
func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, validation.Required, validation.By(validUUID)),
		validation.Field(&r.ItemBarcode, validation.Required, validation.Length(1, 64)),
	)
}

// ReturnRequest closes the open lending for a book item. ReferenceDate
// overrides the processing instant so late returns can be settled for a
// past date; nil means now.
type ReturnRequest struct {
	ItemBarcode   string     `json:"item_barcode"`
	ReferenceDate *time.Time `json:"reference_date,omitempty"`
}

// Validate validates the return request
func (r ReturnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemBarcode, validation.Required, validation.Length(1, 64)),
	)
}

// RenewRequest extends the due date of the open lending for a book item
type RenewRequest struct {
	MemberID    uuid.UUID `json:"member_id"`
	ItemBarcode string    `json:"item_barcode"`
}

// Validate validates the renew request
func (r RenewRequest) Validate() error {
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

// LendingResponse is the API representation of a ledger entry
type LendingResponse struct {
	ID           uuid.UUID  `json:"id"`
	ItemBarcode  string     `json:"item_barcode"`
	MemberID     uuid.UUID  `json:"member_id"`
	CheckedOutAt time.Time  `json:"checked_out_at"`
	DueDate      time.Time  `json:"due_date"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	Renewals     int        `json:"renewals"`
	Open         bool       `json:"open"`
}

// ReturnResult pairs the closed lending with the fine assessed for it,
// if the return was late.
type ReturnResult struct {
	Lending LendingResponse         `json:"lending"`
	Fine    *finemodel.FineResponse `json:"fine,omitempty"`
}

// ToResponse converts a Lending to its API representation
func (l *Lending) ToResponse() LendingResponse {
	return LendingResponse{
		ID:           l.ID,
		ItemBarcode:  l.ItemBarcode,
		MemberID:     l.MemberID,
		CheckedOutAt: l.CheckedOutAt,
		DueDate:      l.DueDate,
		ReturnedAt:   l.ReturnedAt,
		Renewals:     l.Renewals,
		Open:         l.Open(),
	}
}

// ToResponseList converts a slice of lendings
func ToResponseList(lendings []Lending) []LendingResponse {
	out := make([]LendingResponse, 0, len(lendings))
	for i := range lendings {
		out = append(out, lendings[i].ToResponse())
	}
	return out
}
