package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Service assembles the dashboard stats from independent aggregate
// queries. The customers and products counts are mandatory; every other
// aggregate is optional and defaults to zero on failure, with the reason
// logged rather than surfaced.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	group  singleflight.Group
}

// NewService constructs a Service instance.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Load returns the current stats, serving from cache when fresh.
// Concurrent callers share one computation.
func (s *Service) Load(ctx context.Context) (Stats, error) {
	v, err, _ := s.group.Do(statsCacheKey, func() (any, error) {
		if stats, ok, err := s.cache.Get(ctx); err != nil {
			s.warn("stats cache read", err)
		} else if ok {
			return stats, nil
		}
		stats, err := s.compute(ctx)
		if err != nil {
			return Stats{}, err
		}
		if err := s.cache.Set(ctx, stats); err != nil {
			s.warn("stats cache write", err)
		}
		return stats, nil
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}

// Refresh recomputes the stats and repopulates the cache, bypassing any
// cached value. Used by the warmup job.
func (s *Service) Refresh(ctx context.Context) (Stats, error) {
	stats, err := s.compute(ctx)
	if err != nil {
		return Stats{}, err
	}
	if err := s.cache.Set(ctx, stats); err != nil {
		s.warn("stats cache write", err)
	}
	return stats, nil
}

func (s *Service) compute(ctx context.Context) (Stats, error) {
	if s.repo == nil {
		return Stats{}, errors.New("dashboard: repository not configured")
	}

	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count customers: %w", err)
	}
	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count products: %w", err)
	}

	return Stats{
		Customers:     customers,
		Products:      products,
		Suppliers:     optionalCount(s, ctx, "suppliers", s.repo.CountSuppliers),
		Categories:    optionalCount(s, ctx, "categories", s.repo.CountCategories),
		TodaySales:    optionalSum(s, ctx, "today_sales", s.repo.SumSalesToday),
		TodayExpenses: optionalSum(s, ctx, "today_expenses", s.repo.SumExpensesToday),
		WeekProfit:    optionalSum(s, ctx, "week_profit", s.repo.WeekProfit),
		MonthProfit:   optionalSum(s, ctx, "month_profit", s.repo.MonthProfit),
	}, nil
}

// optionalCount runs an optional aggregate, defaulting to zero on any
// failure so one absent table cannot abort the whole response.
func optionalCount(s *Service, ctx context.Context, name string, fn func(context.Context) (int64, error)) int64 {
	value, err := fn(ctx)
	if err != nil {
		s.logDefaulted(name, err)
		return 0
	}
	return value
}

func optionalSum(s *Service, ctx context.Context, name string, fn func(context.Context) (float64, error)) float64 {
	value, err := fn(ctx)
	if err != nil {
		s.logDefaulted(name, err)
		return 0
	}
	return value
}

func (s *Service) logDefaulted(name string, err error) {
	if s.logger == nil {
		return
	}
	if errors.Is(err, ErrTableMissing) {
		s.logger.Warn("optional aggregate defaulted, table missing", slog.String("metric", name))
		return
	}
	s.logger.Warn("optional aggregate defaulted", slog.String("metric", name), slog.Any("error", err))
}

func (s *Service) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}
