package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superbiz-erp/superbiz-erp/internal/dashboard"
	"github.com/superbiz-erp/superbiz-erp/jobs"
	_ "github.com/superbiz-erp/superbiz-erp/testing"
)

type stubRepo struct {
	customers    int64
	products     int64
	customersErr error
	refreshes    int
}

func (s *stubRepo) CountCustomers(ctx context.Context) (int64, error) {
	s.refreshes++
	return s.customers, s.customersErr
}

func (s *stubRepo) CountSuppliers(ctx context.Context) (int64, error)  { return 0, nil }
func (s *stubRepo) CountCategories(ctx context.Context) (int64, error) { return 0, nil }
func (s *stubRepo) CountProducts(ctx context.Context) (int64, error)   { return s.products, nil }
func (s *stubRepo) SumSalesToday(ctx context.Context) (float64, error) { return 0, nil }
func (s *stubRepo) SumExpensesToday(ctx context.Context) (float64, error) {
	return 0, nil
}
func (s *stubRepo) WeekProfit(ctx context.Context) (float64, error)  { return 0, nil }
func (s *stubRepo) MonthProfit(ctx context.Context) (float64, error) { return 0, nil }

func TestStatsWarmupHandle(t *testing.T) {
	repo := &stubRepo{customers: 7, products: 12}
	job := jobs.NewStatsWarmupJob(dashboard.NewService(repo, nil, nil), nil)

	task, err := jobs.NewStatsWarmupTask("scheduled")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, repo.refreshes)
}

func TestStatsWarmupBadPayloadSkipsRetry(t *testing.T) {
	repo := &stubRepo{}
	job := jobs.NewStatsWarmupJob(dashboard.NewService(repo, nil, nil), nil)

	task := asynq.NewTask(jobs.TaskStatsWarmup, []byte("{not json"))
	err := job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, repo.refreshes)
}

func TestStatsWarmupPropagatesMandatoryFailure(t *testing.T) {
	repo := &stubRepo{customersErr: errors.New("connection refused")}
	job := jobs.NewStatsWarmupJob(dashboard.NewService(repo, nil, nil), nil)

	task, err := jobs.NewStatsWarmupTask("scheduled")
	require.NoError(t, err)

	require.Error(t, job.Handle(context.Background(), task))
}
