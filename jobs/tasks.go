package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStatsWarmup is the task type refreshing the dashboard stats cache.
	TaskStatsWarmup = "stats:warmup"
)

// StatsWarmupPayload parameterises a stats warmup run.
type StatsWarmupPayload struct {
	Reason string `json:"reason"`
}

// NewStatsWarmupTask constructs an Asynq task.
func NewStatsWarmupTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(StatsWarmupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsWarmup, data), nil
}
