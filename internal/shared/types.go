package shared

import (
	"time"

	"github.com/google/uuid"
)

// Task types routed through the background queue
const (
	TypeScanOverdueLendings = "lending:scan_overdue"
	TypeSendOverdueNotice   = "lending:overdue_notice"
)

// Queue names by priority
const (
	QueueCritical = "critical"
	QueueLending  = "lending"
	QueueDefault  = "default"
)

// ScanOverduePayload triggers a sweep of the lending ledger for entries
// past their due date.
type ScanOverduePayload struct {
	AsOf time.Time `json:"as_of"`
}

// OverdueNoticePayload carries one overdue lending to the notice handler
type OverdueNoticePayload struct {
	LendingID   uuid.UUID `json:"lending_id"`
	MemberID    uuid.UUID `json:"member_id"`
	ItemBarcode string    `json:"item_barcode"`
	DueDate     time.Time `json:"due_date"`
}
