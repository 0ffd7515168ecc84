package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/superbiz-erp/superbiz-erp/internal/dashboard"
)

// StatsWarmupJob recomputes the dashboard stats off the request path so
// the polling dashboard keeps hitting a warm cache.
type StatsWarmupJob struct {
	Dashboard *dashboard.Service
	Logger    *slog.Logger
}

// NewStatsWarmupJob wires dependencies for the warmup handler.
func NewStatsWarmupJob(svc *dashboard.Service, logger *slog.Logger) *StatsWarmupJob {
	return &StatsWarmupJob{Dashboard: svc, Logger: logger}
}

// Handle processes stats warmup tasks.
func (j *StatsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("stats warmup: handler not configured")
	}
	var payload StatsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	stats, err := j.Dashboard.Refresh(runCtx)
	if err != nil {
		j.logger().Error("stats warmup failed", slog.String("reason", payload.Reason), slog.Any("error", err))
		return err
	}
	j.logger().Info("stats warmup completed",
		slog.String("reason", payload.Reason),
		slog.Int64("customers", stats.Customers),
		slog.Int64("products", stats.Products),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *StatsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
