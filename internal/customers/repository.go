package customers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/superbiz-erp/superbiz-erp/internal/platform/db"
)

// Repository defines persistence operations for customers.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, customer Customer) (int64, error)
}

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all customers, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, father_name, email, phone, whatsapp, address, state, pincode, created_at
		FROM customers
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.FatherName, &c.Email, &c.Phone, &c.Whatsapp, &c.Address, &c.State, &c.Pincode, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

// Count returns the live customer count.
func (r *PGRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total)
	return total, err
}

// Create inserts one customer row inside a transaction and returns its id.
func (r *PGRepository) Create(ctx context.Context, customer Customer) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO customers (name, father_name, email, phone, whatsapp, address, state, pincode)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			customer.Name, customer.FatherName, customer.Email, customer.Phone,
			customer.Whatsapp, customer.Address, customer.State, customer.Pincode,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

var _ Repository = (*PGRepository)(nil)
