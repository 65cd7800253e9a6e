package main

import (
	"log"

	"github.com/hibiken/asynq"

	lendingjob "library-backend/internal/domains/lending/job"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/shared"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers and the queue client the scan
// job uses to fan out notices.
type HandlerRegistry struct {
	queueClient *queue.Client

	scanOverdue       asynq.HandlerFunc
	sendOverdueNotice asynq.HandlerFunc
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	client := queue.NewClient(c.Config.Redis.Host)

	return &HandlerRegistry{
		queueClient:       client,
		scanOverdue:       lendingjob.ScanOverdueHandler(c.LendingService, client),
		sendOverdueNotice: lendingjob.SendOverdueNoticeHandler(c.MemberService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeScanOverdueLendings, h.scanOverdue)
	mux.HandleFunc(shared.TypeSendOverdueNotice, h.sendOverdueNotice)
}

// Close releases the queue client connection
func (h *HandlerRegistry) Close() {
	if err := h.queueClient.Close(); err != nil {
		log.Printf("[Shutdown] Failed to close queue client: %v", err)
	}
}
