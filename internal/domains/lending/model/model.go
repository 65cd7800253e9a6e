package model

import (
	"time"

	"github.com/google/uuid"
)

// === LENDING ===

// Lending is one ledger entry: a member holding a specific book item.
// An entry is open while ReturnedAt is nil; the catalog item status
// guarantees at most one open entry per barcode.
type Lending struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ItemBarcode  string     `json:"item_barcode" db:"item_barcode"`
	MemberID     uuid.UUID  `json:"member_id" db:"member_id"`
	CheckedOutAt time.Time  `json:"checked_out_at" db:"checked_out_at"`
	DueDate      time.Time  `json:"due_date" db:"due_date"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty" db:"returned_at"`
	Renewals     int        `json:"renewals" db:"renewals"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Open reports whether the lending is still outstanding
func (l *Lending) Open() bool {
	return l.ReturnedAt == nil
}

// OverdueDays returns the number of whole-or-partial days the lending is
// past due at the reference instant. Any fraction of a day counts as a
// full day. Zero when not overdue.
func (l *Lending) OverdueDays(at time.Time) int {
	if !at.After(l.DueDate) {
		return 0
	}
	late := at.Sub(l.DueDate)
	days := int(late / (24 * time.Hour))
	if late%(24*time.Hour) > 0 {
		days++
	}
	return days
}
