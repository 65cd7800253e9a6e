package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// === FINE STATUS ===

// FineStatus represents the payment state of a fine
type FineStatus string

const (
	FineStatusUnpaid FineStatus = "UNPAID"
	FineStatusPaid   FineStatus = "PAID"
)

func (s FineStatus) String() string {
	return string(s)
}

// === FINE ===

// Fine is a charge raised against a member for a late return. Amount is
// days overdue multiplied by the configured daily rate, fixed at
// assessment time.
type Fine struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	LendingID   uuid.UUID       `json:"lending_id" db:"lending_id"`
	MemberID    uuid.UUID       `json:"member_id" db:"member_id"`
	ItemBarcode string          `json:"item_barcode" db:"item_barcode"`
	DaysOverdue int             `json:"days_overdue" db:"days_overdue"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Status      FineStatus      `json:"status" db:"status"`
	AssessedAt  time.Time       `json:"assessed_at" db:"assessed_at"`
	PaidAt      *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
