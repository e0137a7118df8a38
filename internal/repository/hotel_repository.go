package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// HotelRepo stores hotels and their room counters.  The counter is only
// written from inside a booking transaction (UpdateAvailabilityTx) or by an
// administrative edit (UpdateDetailsTx).
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a HotelRepo bound to db.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// DB exposes the pool so services can open transactions spanning several
// repositories.
func (r *HotelRepo) DB() *sql.DB { return r.db }

const hotelColumns = "id, name, location, total_rooms, available_rooms"

func scanHotel(row interface{ Scan(...any) error }) (*model.Hotel, error) {
	var (
		id, name, location string
		total, available   int
	)
	if err := row.Scan(&id, &name, &location, &total, &available); err != nil {
		return nil, err
	}
	return model.RestoreHotel(id, name, location, total, available)
}

// Create inserts h with its current counters.  A duplicate id yields
// ErrConflict.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO hotels ("+hotelColumns+") VALUES (?, ?, ?, ?, ?)",
		h.ID, h.Name, h.Location, h.TotalRooms, h.AvailableRooms())
	if database.IsDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// Upsert inserts h or, when the id exists, refreshes its name and location.
// Existing room counters are left alone so re-running a seed never resets
// live bookings.
func (r *HotelRepo) Upsert(ctx context.Context, h *model.Hotel) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO hotels ("+hotelColumns+") VALUES (?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE name = VALUES(name), location = VALUES(location)",
		h.ID, h.Name, h.Location, h.TotalRooms, h.AvailableRooms())
	return err
}

// GetByID fetches a hotel or returns ErrHotelNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	return r.get(ctx, r.db, id, false)
}

// GetByIDTx is GetByID inside the caller's transaction, without a row lock.
func (r *HotelRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Hotel, error) {
	return r.get(ctx, tx, id, false)
}

// GetForUpdateTx reads a hotel and holds its row lock until tx ends, so
// concurrent bookings on the same hotel are serialized across processes.
func (r *HotelRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Hotel, error) {
	return r.get(ctx, tx, id, true)
}

func (r *HotelRepo) get(ctx context.Context, q querier, id string, lock bool) (*model.Hotel, error) {
	query := "SELECT " + hotelColumns + " FROM hotels WHERE id = ?"
	if lock {
		query += " FOR UPDATE"
	}
	h, err := scanHotel(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, ErrHotelNotFound)
	}
	return h, nil
}

// UpdateAvailabilityTx persists the room counter of h.
func (r *HotelRepo) UpdateAvailabilityTx(ctx context.Context, tx *sql.Tx, h *model.Hotel) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE hotels SET available_rooms = ? WHERE id = ?", h.AvailableRooms(), h.ID)
	if err != nil {
		return err
	}
	return expectOne(res, ErrHotelNotFound)
}

// UpdateDetailsTx persists an administrative edit: name, location and both
// counters.
func (r *HotelRepo) UpdateDetailsTx(ctx context.Context, tx *sql.Tx, h *model.Hotel) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE hotels SET name = ?, location = ?, total_rooms = ?, available_rooms = ? WHERE id = ?",
		h.Name, h.Location, h.TotalRooms, h.AvailableRooms(), h.ID)
	if err != nil {
		return err
	}
	return expectOne(res, ErrHotelNotFound)
}

// List returns every hotel ordered by id.
func (r *HotelRepo) List(ctx context.Context) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hotelColumns+" FROM hotels ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
