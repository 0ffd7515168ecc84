package suppliers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/superbiz-erp/superbiz-erp/internal/platform/db"
)

const undefinedTableCode = "42P01"

// ErrTableMissing reports that an optional table is absent from the schema.
var ErrTableMissing = errors.New("table missing")

// Repository defines persistence operations for suppliers.
type Repository interface {
	List(ctx context.Context) ([]Supplier, error)
	ListCategories(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, supplier Supplier) (int64, error)
}

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all suppliers in storage order.
func (r *PGRepository) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, contact_type, contact_id, business_name, prefix, first_name, middle_name,
		       last_name, mobile, alt_contact, landline, email, dob
		FROM suppliers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.ContactType, &s.ContactID, &s.BusinessName, &s.Prefix,
			&s.FirstName, &s.MiddleName, &s.LastName, &s.Mobile, &s.AltContact,
			&s.Landline, &s.Email, &s.DOB); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// ListCategories returns all categories. Returns ErrTableMissing when the
// optional categories table does not exist.
func (r *PGRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
			return nil, ErrTableMissing
		}
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts one supplier row inside a transaction and returns its id.
func (r *PGRepository) Create(ctx context.Context, supplier Supplier) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO suppliers (contact_type, contact_id, business_name, prefix, first_name,
			                       middle_name, last_name, mobile, alt_contact, landline, email, dob)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`,
			supplier.ContactType, supplier.ContactID, supplier.BusinessName, supplier.Prefix,
			supplier.FirstName, supplier.MiddleName, supplier.LastName, supplier.Mobile,
			supplier.AltContact, supplier.Landline, supplier.Email, supplier.DOB,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

var _ Repository = (*PGRepository)(nil)
