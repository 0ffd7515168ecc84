package dashboard

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const undefinedTableCode = "42P01"

// ErrTableMissing reports that an optional aggregate source table is
// absent from the schema.
var ErrTableMissing = errors.New("table missing")

// Repository exposes the aggregate query battery behind the dashboard.
type Repository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountSuppliers(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	SumSalesToday(ctx context.Context) (float64, error)
	SumExpensesToday(ctx context.Context) (float64, error)
	WeekProfit(ctx context.Context) (float64, error)
	MonthProfit(ctx context.Context) (float64, error)
}

// PGRepository provides PostgreSQL backed aggregates.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CountCustomers returns the total customer count.
func (r *PGRepository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM customers`)
}

// CountSuppliers returns the total supplier count.
func (r *PGRepository) CountSuppliers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM suppliers`)
}

// CountCategories returns the total category count.
func (r *PGRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM categories`)
}

// CountProducts returns the total product count.
func (r *PGRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

// SumSalesToday returns the sales total for the current date.
func (r *PGRepository) SumSalesToday(ctx context.Context) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM sales WHERE date = CURRENT_DATE`)
}

// SumExpensesToday returns the expense total for the current date.
func (r *PGRepository) SumExpensesToday(ctx context.Context) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expense_date = CURRENT_DATE`)
}

// WeekProfit returns sales minus expenses for the current ISO week.
func (r *PGRepository) WeekProfit(ctx context.Context) (float64, error) {
	return r.sum(ctx, `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM sales
			  WHERE date >= date_trunc('week', CURRENT_DATE)::date) -
			(SELECT COALESCE(SUM(amount), 0) FROM expenses
			  WHERE expense_date >= date_trunc('week', CURRENT_DATE)::date)`)
}

// MonthProfit returns sales minus expenses for the current calendar month.
func (r *PGRepository) MonthProfit(ctx context.Context) (float64, error) {
	return r.sum(ctx, `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM sales
			  WHERE date >= date_trunc('month', CURRENT_DATE)::date) -
			(SELECT COALESCE(SUM(amount), 0) FROM expenses
			  WHERE expense_date >= date_trunc('month', CURRENT_DATE)::date)`)
}

func (r *PGRepository) count(ctx context.Context, query string) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, mapTableMissing(err)
	}
	return total, nil
}

func (r *PGRepository) sum(ctx context.Context, query string) (float64, error) {
	var total float64
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, mapTableMissing(err)
	}
	return total, nil
}

func mapTableMissing(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
		return ErrTableMissing
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
