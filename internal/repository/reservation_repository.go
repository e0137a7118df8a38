package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/hotel-reservation/internal/database"
    "github.com/iliyamo/hotel-reservation/internal/model"
)

// Reservation statuses stored in reservations.status.
const (
    StatusBooked    = "BOOKED"
    StatusCancelled = "CANCELLED"
)

// ReservationRepo persists reservations.  All timestamp fields are stored in
// UTC and DATE columns are read back as midnight UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationRecord mirrors one row of the reservations table.  HoldsRoom is
// true for reservations created through object binding, which took a room
// from the hotel counter; direct-field reservations never hold one.
// Business logic should use the model.Reservation returned by Model.
type ReservationRecord struct {
    ID         string
    CustomerID string
    HotelID    string
    CheckIn    time.Time
    CheckOut   time.Time
    HoldsRoom  bool
    Status     string
    CreatedAt  time.Time
    UpdatedAt  time.Time
}

// RecordFrom copies a model reservation into a BOOKED record.
func RecordFrom(r *model.Reservation) *ReservationRecord {
    return &ReservationRecord{
        ID:         r.ID(),
        CustomerID: r.CustomerID(),
        HotelID:    r.HotelID(),
        CheckIn:    r.CheckIn(),
        CheckOut:   r.CheckOut(),
        HoldsRoom:  r.Bound(),
        Status:     StatusBooked,
    }
}

// Model rebuilds the domain reservation.  Live references are not attached.
func (rec *ReservationRecord) Model() (*model.Reservation, error) {
    return model.NewReservation(rec.ID, rec.CustomerID, rec.HotelID,
        model.FormatDate(rec.CheckIn), model.FormatDate(rec.CheckOut))
}

// Cancelled reports whether the row is in the CANCELLED state.
func (rec *ReservationRecord) Cancelled() bool { return rec.Status == StatusCancelled }

const reservationColumns = "id, customer_id, hotel_id, check_in, check_out, holds_room, status, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }) (*ReservationRecord, error) {
    var rec ReservationRecord
    if err := row.Scan(&rec.ID, &rec.CustomerID, &rec.HotelID, &rec.CheckIn, &rec.CheckOut,
        &rec.HoldsRoom, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
        return nil, err
    }
    return &rec, nil
}

// CreateTx inserts rec within the caller's transaction and reads back the
// generated timestamps.  A duplicate id yields ErrConflict.  The caller must
// commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *ReservationRecord) error {
    const q = `INSERT INTO reservations (id, customer_id, hotel_id, check_in, check_out, holds_room, status) VALUES (?, ?, ?, ?, ?, ?, ?)`
    if rec.Status == "" {
        rec.Status = StatusBooked
    }
    _, err := tx.ExecContext(ctx, q, rec.ID, rec.CustomerID, rec.HotelID,
        model.FormatDate(rec.CheckIn), model.FormatDate(rec.CheckOut), rec.HoldsRoom, rec.Status)
    if err != nil {
        if database.IsDuplicateKey(err) {
            return ErrConflict
        }
        return err
    }
    return tx.QueryRowContext(ctx,
        "SELECT created_at, updated_at FROM reservations WHERE id = ?", rec.ID).
        Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// ReopenTx turns a CANCELLED row back into a BOOKED one for the same id.
// Booking the same customer, hotel and date again after a cancellation
// derives the same id, so the old row is reused instead of inserted.
func (r *ReservationRepo) ReopenTx(ctx context.Context, tx *sql.Tx, rec *ReservationRecord) error {
    const q = `UPDATE reservations SET check_in = ?, check_out = ?, holds_room = ?, status = ? WHERE id = ? AND status = ?`
    res, err := tx.ExecContext(ctx, q, model.FormatDate(rec.CheckIn), model.FormatDate(rec.CheckOut),
        rec.HoldsRoom, StatusBooked, rec.ID, StatusCancelled)
    if err != nil {
        return err
    }
    if err := expectOne(res, ErrConflict); err != nil {
        return err
    }
    rec.Status = StatusBooked
    return nil
}

// GetByID fetches a reservation or returns ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*ReservationRecord, error) {
    return r.get(ctx, r.db, id, false)
}

// GetByIDTx fetches a reservation inside tx and locks its row.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*ReservationRecord, error) {
    return r.get(ctx, tx, id, true)
}

func (r *ReservationRepo) get(ctx context.Context, q querier, id string, lock bool) (*ReservationRecord, error) {
    query := "SELECT " + reservationColumns + " FROM reservations WHERE id = ?"
    if lock {
        query += " FOR UPDATE"
    }
    rec, err := scanReservation(q.QueryRowContext(ctx, query, id))
    if err != nil {
        return nil, notFound(err, ErrReservationNotFound)
    }
    return rec, nil
}

// MarkCancelledTx moves a BOOKED reservation to CANCELLED.  It returns
// ErrConflict when the row is not BOOKED anymore.
func (r *ReservationRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, id string) error {
    res, err := tx.ExecContext(ctx,
        "UPDATE reservations SET status = ? WHERE id = ? AND status = ?",
        StatusCancelled, id, StatusBooked)
    if err != nil {
        return err
    }
    return expectOne(res, ErrConflict)
}

// ListByCustomer returns every reservation of a customer, newest check-in
// first.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, customerID string) ([]*ReservationRecord, error) {
    return r.list(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE customer_id = ? ORDER BY check_in DESC, id",
        customerID)
}

// ListByHotel returns the reservations of a hotel.  When activeOnly is set
// cancelled rows are skipped.
func (r *ReservationRepo) ListByHotel(ctx context.Context, hotelID string, activeOnly bool) ([]*ReservationRecord, error) {
    if activeOnly {
        return r.list(ctx,
            "SELECT "+reservationColumns+" FROM reservations WHERE hotel_id = ? AND status = ? ORDER BY check_in, id",
            hotelID, StatusBooked)
    }
    return r.list(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE hotel_id = ? ORDER BY check_in, id",
        hotelID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]*ReservationRecord, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []*ReservationRecord
    for rows.Next() {
        rec, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, rec)
    }
    return out, rows.Err()
}
