package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// CustomerRepo stores customers.  Validation happens in the model before a
// customer reaches the repository; rows read back are re-validated through
// model.NewCustomer.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to db.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = "id, name, email, phone"

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var id, name, email, phone string
	if err := row.Scan(&id, &name, &email, &phone); err != nil {
		return nil, err
	}
	return model.NewCustomer(id, name, email, phone)
}

// Create inserts c.  A duplicate id yields ErrConflict.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (id, name, email, phone) VALUES (?, ?, ?, ?)",
		c.ID(), c.Name(), c.Email(), c.Phone())
	if database.IsDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// GetByID fetches a customer or returns ErrCustomerNotFound.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	return r.get(ctx, r.db, id)
}

// GetByIDTx is GetByID inside the caller's transaction.
func (r *CustomerRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Customer, error) {
	return r.get(ctx, tx, id)
}

func (r *CustomerRepo) get(ctx context.Context, q querier, id string) (*model.Customer, error) {
	c, err := scanCustomer(q.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	return c, nil
}

// Update writes the mutable fields of c.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?",
		c.Name(), c.Email(), c.Phone(), c.ID())
	if err != nil {
		return err
	}
	return expectOne(res, ErrCustomerNotFound)
}

// Delete removes a customer.  Customers with booked reservations cannot be
// removed and yield ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var active int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE customer_id = ? AND status = ?",
		id, StatusBooked).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := expectOne(res, ErrCustomerNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns customers ordered by id.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*model.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+customerColumns+" FROM customers ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
