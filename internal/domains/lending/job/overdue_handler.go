package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/domains/lending/service"
	membersvc "library-backend/internal/domains/member/service"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

// ScanOverdueHandler sweeps the ledger for lendings past due and fans
// out one notice task per hit.
func ScanOverdueHandler(lendings service.ServiceInterface, client *queue.Client) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.ScanOverduePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		asOf := p.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}

		overdue, err := lendings.ListOverdue(ctx, asOf)
		if err != nil {
			return err
		}

		for _, lending := range overdue {
			notice := shared.OverdueNoticePayload{
				LendingID:   lending.ID,
				MemberID:    lending.MemberID,
				ItemBarcode: lending.ItemBarcode,
				DueDate:     lending.DueDate,
			}
			if err := client.EnqueueOverdueNotice(ctx, notice); err != nil {
				return err
			}
		}

		logger.Info("Overdue scan finished", map[string]interface{}{
			"as_of":   asOf,
			"overdue": len(overdue),
		})
		return nil
	}
}

// SendOverdueNoticeHandler records the notice for one overdue lending.
// Delivery is a log line for now; the member lookup keeps the payload
// honest and drops notices for accounts that no longer exist.
func SendOverdueNoticeHandler(members membersvc.ServiceInterface) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.OverdueNoticePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		member, err := members.GetMember(ctx, p.MemberID)
		if err != nil {
			return asynq.SkipRetry
		}

		logger.Info("Overdue notice", map[string]interface{}{
			"member_email": member.Email,
			"item_barcode": p.ItemBarcode,
			"due_date":     p.DueDate,
			"lending_id":   p.LendingID,
		})
		return nil
	}
}
