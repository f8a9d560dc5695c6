package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"finpress-backend/pkg/logger"
)

// Scheduler registers the periodic jobs on asynq's cron scheduler.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr string) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr},
			&asynq.SchedulerOpts{
				Location: time.UTC,
				LogLevel: asynq.InfoLevel,
			},
		),
	}
}

// RegisterJobs wires every periodic job. The content purge runs daily at
// 03:00 UTC, off editorial hours.
func (s *Scheduler) RegisterJobs() error {
	entryID, err := s.scheduler.Register("0 3 * * *", NewContentPurgeTask(), asynq.Queue("low"))
	if err != nil {
		return err
	}

	logger.Info("scheduled content purge job", map[string]interface{}{"entryID": entryID})
	return nil
}

// Run starts the scheduler and blocks.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
