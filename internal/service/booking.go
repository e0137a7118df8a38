// Package service coordinates the domain model, the repositories and the
// event publisher.  Every state change runs inside one database
// transaction under the hotel's lock, and events are published only after
// the transaction commits.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	q "github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ErrAlreadyCancelled is returned when cancelling a reservation twice.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// BookingService books, records and cancels reservations.
type BookingService struct {
	DB           *sql.DB
	Customers    *repository.CustomerRepo
	Hotels       *repository.HotelRepo
	Reservations *repository.ReservationRepo
	Locks        *HotelLocks
	Events       Publisher

	now func() time.Time
}

func NewBookingService(db *sql.DB, c *repository.CustomerRepo, h *repository.HotelRepo,
	r *repository.ReservationRepo, locks *HotelLocks, events Publisher) *BookingService {
	if events == nil {
		events = LogPublisher{}
	}
	return &BookingService{
		DB: db, Customers: c, Hotels: h, Reservations: r,
		Locks: locks, Events: events, now: time.Now,
	}
}

// RecordInput carries the fields of a direct-field reservation.
type RecordInput struct {
	ReservationID string
	CustomerID    string
	HotelID       string
	CheckIn       string
	CheckOut      string
}

// CancelResult reports what a cancellation changed.  AvailableRooms is -1
// when the reservation held no room.
type CancelResult struct {
	Reservation    *model.Reservation
	RoomFreed      bool
	AvailableRooms int
}

// Book reserves one room at hotelID for customerID on date.  The reservation
// id is derived from the three inputs, so booking the same night twice is a
// conflict; a previously cancelled booking for that night is reopened.
func (s *BookingService) Book(ctx context.Context, customerID, hotelID, date string) (*model.Reservation, error) {
	day, err := model.ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	unlock := s.Locks.Lock(hotelID)
	defer unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	hotel, err := s.Hotels.GetForUpdateTx(ctx, tx, hotelID)
	if err != nil {
		return nil, err
	}
	customer, err := s.Customers.GetByIDTx(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	id := model.BoundReservationID(customerID, hotelID, day)
	reopen := false
	existing, err := s.Reservations.GetByIDTx(ctx, tx, id)
	switch {
	case err == nil && !existing.Cancelled():
		return nil, fmt.Errorf("reservation %s already booked: %w", id, repository.ErrConflict)
	case err == nil:
		reopen = true
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	res, err := model.BindReservation(customer, hotel, date)
	if err != nil {
		return nil, err
	}
	if err := s.Hotels.UpdateAvailabilityTx(ctx, tx, hotel); err != nil {
		return nil, err
	}
	rec := repository.RecordFrom(res)
	if reopen {
		err = s.Reservations.ReopenTx(ctx, tx, rec)
	} else {
		err = s.Reservations.CreateTx(ctx, tx, rec)
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Printf("booking: %s booked, hotel %s has %d rooms left", res.ID(), hotel.ID, hotel.AvailableRooms())
	s.publish(ctx, q.EventBooked, res, hotel.AvailableRooms())
	return res, nil
}

// Record stores a direct-field reservation.  The hotel's inventory is not
// touched; the customer and hotel must exist.
func (s *BookingService) Record(ctx context.Context, in RecordInput) (*model.Reservation, error) {
	res, err := model.NewReservation(in.ReservationID, in.CustomerID, in.HotelID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Customers.GetByIDTx(ctx, tx, res.CustomerID()); err != nil {
		return nil, err
	}
	if _, err := s.Hotels.GetByIDTx(ctx, tx, res.HotelID()); err != nil {
		return nil, err
	}
	if err := s.Reservations.CreateTx(ctx, tx, repository.RecordFrom(res)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, q.EventRecorded, res, -1)
	return res, nil
}

// Cancel cancels a reservation.  A booking made through object binding gives
// its room back; a direct-field record only changes status.
func (s *BookingService) Cancel(ctx context.Context, reservationID string) (CancelResult, error) {
	peek, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return CancelResult{}, err
	}
	if peek.Cancelled() {
		return CancelResult{}, ErrAlreadyCancelled
	}
	unlock := s.Locks.Lock(peek.HotelID)
	defer unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return CancelResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	rec, err := s.Reservations.GetByIDTx(ctx, tx, reservationID)
	if err != nil {
		return CancelResult{}, err
	}
	if rec.Cancelled() {
		return CancelResult{}, ErrAlreadyCancelled
	}
	res, err := rec.Model()
	if err != nil {
		return CancelResult{}, err
	}

	out := CancelResult{Reservation: res, AvailableRooms: -1}
	var hotel *model.Hotel
	if rec.HoldsRoom {
		hotel, err = s.Hotels.GetForUpdateTx(ctx, tx, rec.HotelID)
		if err != nil {
			return CancelResult{}, err
		}
		if err := res.Attach(nil, hotel); err != nil {
			return CancelResult{}, err
		}
	}
	freed, err := res.Cancel()
	if err != nil {
		return CancelResult{}, err
	}
	if freed {
		if err := s.Hotels.UpdateAvailabilityTx(ctx, tx, hotel); err != nil {
			return CancelResult{}, err
		}
	}
	if hotel != nil {
		out.AvailableRooms = hotel.AvailableRooms()
	}
	out.RoomFreed = freed

	if err := s.Reservations.MarkCancelledTx(ctx, tx, rec.ID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return CancelResult{}, ErrAlreadyCancelled
		}
		return CancelResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return CancelResult{}, err
	}

	log.Printf("booking: %s cancelled (room freed: %t)", res.ID(), freed)
	s.publish(ctx, q.EventCancelled, res, out.AvailableRooms)
	return out, nil
}

// publish sends the event without failing the request: the transaction has
// already committed.
func (s *BookingService) publish(ctx context.Context, typ string, res *model.Reservation, available int) {
	ev := q.ReservationEvent{
		Type:           typ,
		ReservationID:  res.ID(),
		CustomerID:     res.CustomerID(),
		HotelID:        res.HotelID(),
		CheckIn:        model.FormatDate(res.CheckIn()),
		CheckOut:       model.FormatDate(res.CheckOut()),
		AvailableRooms: available,
	}
	ev.Stamp(s.now())

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pctx, ev); err != nil {
		log.Printf("booking: publish %s for %s failed: %v", typ, res.ID(), err)
	}
}
