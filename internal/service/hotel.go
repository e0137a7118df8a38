package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// HotelUpdate is an administrative edit.  Nil fields are left unchanged.
type HotelUpdate struct {
	Name       *string
	Location   *string
	TotalRooms *int
}

// HotelService applies administrative edits under the hotel's lock so they
// never interleave with a booking.
type HotelService struct {
	DB     *sql.DB
	Hotels *repository.HotelRepo
	Locks  *HotelLocks
}

func NewHotelService(db *sql.DB, h *repository.HotelRepo, locks *HotelLocks) *HotelService {
	return &HotelService{DB: db, Hotels: h, Locks: locks}
}

// Update applies u to the hotel.  A capacity change keeps the booked rooms
// booked and moves the available count by the same delta; shrinking below
// the booked count is a validation error.
func (s *HotelService) Update(ctx context.Context, id string, u HotelUpdate) (*model.Hotel, error) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, &model.ValidationError{Field: "name", Msg: "must be a non-empty string"}
	}
	unlock := s.Locks.Lock(id)
	defer unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	h, err := s.Hotels.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if u.TotalRooms != nil {
		if err := h.Resize(*u.TotalRooms); err != nil {
			return nil, err
		}
	}
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.Location != nil {
		h.Location = *u.Location
	}
	if err := s.Hotels.UpdateDetailsTx(ctx, tx, h); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return h, nil
}
