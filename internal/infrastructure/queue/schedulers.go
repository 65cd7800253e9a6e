package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/config"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs registers all recurring jobs
func (s *Scheduler) RegisterJobs() error {
	return s.registerScanOverdueJob()
}

// The overdue scan runs once a day, early morning, so notices go out
// before the library opens.
func (s *Scheduler) registerScanOverdueJob() error {
	payload, err := json.Marshal(shared.ScanOverduePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeScanOverdueLendings, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.OverdueScanCron,
		task,
		asynq.Queue(shared.QueueLending),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ScanOverdueLendings job", err)
		return err
	}

	logger.Info("Registered ScanOverdueLendings", map[string]interface{}{
		"cron": s.jobConfig.OverdueScanCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
