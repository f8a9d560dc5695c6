package queue

import "github.com/hibiken/asynq"

// Task type names shared by the scheduler and the worker mux.
const (
	TypeContentPurge = "content:purge"
)

// NewContentPurgeTask builds the periodic purge task. The payload is empty;
// the retention window is handler configuration.
func NewContentPurgeTask() *asynq.Task {
	return asynq.NewTask(TypeContentPurge, nil)
}
