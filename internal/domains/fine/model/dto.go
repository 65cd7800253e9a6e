package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FineResponse is the API representation of a fine
type FineResponse struct {
	ID          uuid.UUID       `json:"id"`
	LendingID   uuid.UUID       `json:"lending_id"`
	MemberID    uuid.UUID       `json:"member_id"`
	ItemBarcode string          `json:"item_barcode"`
	DaysOverdue int             `json:"days_overdue"`
	Amount      decimal.Decimal `json:"amount"`
	Status      FineStatus      `json:"status"`
	AssessedAt  time.Time       `json:"assessed_at"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}

// ToResponse converts a Fine to its API representation
func (f *Fine) ToResponse() FineResponse {
	return FineResponse{
		ID:          f.ID,
		LendingID:   f.LendingID,
		MemberID:    f.MemberID,
		ItemBarcode: f.ItemBarcode,
		DaysOverdue: f.DaysOverdue,
		Amount:      f.Amount,
		Status:      f.Status,
		AssessedAt:  f.AssessedAt,
		PaidAt:      f.PaidAt,
	}
}

// ToResponseList converts a slice of fines
func ToResponseList(fines []Fine) []FineResponse {
	out := make([]FineResponse, 0, len(fines))
	for i := range fines {
		out = append(out, fines[i].ToResponse())
	}
	return out
}
