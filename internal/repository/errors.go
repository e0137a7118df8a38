// Package repository persists the reservation domain in MySQL.  Repositories
// return model types and translate driver failures into the sentinel errors
// below so handlers can map them onto HTTP statuses.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every "<entity> not found" error.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation it is not
// allowed to perform.  Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of existing
// state, such as a duplicate id or deleting a customer that still has
// active reservations.  Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

var (
	ErrCustomerNotFound    = fmt.Errorf("customer %w", ErrNotFound)
	ErrHotelNotFound       = fmt.Errorf("hotel %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// notFound maps sql.ErrNoRows onto the entity's sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// expectOne turns an UPDATE/DELETE that touched nothing into sentinel.
func expectOne(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
