package model

import (
	"fmt"
	"strings"
	"time"
)

// Reservation links one customer, one hotel and a date range.  CustomerID
// and HotelID are lookup keys; the optional customer and hotel pointers are
// non-owning references set only by BindReservation or Attach, and the
// entities they point to outlive the reservation.
//
// Fields:
//  id         – reservations.id, supplied or derived.
//  customerID – reservations.customer_id
//  hotelID    – reservations.hotel_id
//  checkIn    – first night, midnight UTC.
//  checkOut   – departure date, never before checkIn.
type Reservation struct {
	id         string
	customerID string
	hotelID    string
	checkIn    time.Time
	checkOut   time.Time

	customer  *Customer
	hotel     *Hotel
	cancelled bool
}

// ReservationDTO is the flat serialized shape of a Reservation.
type ReservationDTO struct {
	ReservationID string `json:"reservation_id"`
	CustomerID    string `json:"customer_id"`
	HotelID       string `json:"hotel_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
}

// NewReservation builds a reservation from plain fields.  It has no effect on
// any hotel.  Checks run in order and the first failure is returned:
// reservation id, customer id, hotel id, check-in date, check-out date,
// date ordering.
func NewReservation(id, customerID, hotelID, checkIn, checkOut string) (*Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("reservation_id", "must be a non-empty string")
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer_id", "must be a non-empty string")
	}
	if strings.TrimSpace(hotelID) == "" {
		return nil, invalid("hotel_id", "must be a non-empty string")
	}
	in, err := ParseDate("check_in", checkIn)
	if err != nil {
		return nil, err
	}
	out, err := ParseDate("check_out", checkOut)
	if err != nil {
		return nil, err
	}
	if out.Before(in) {
		return nil, invalid("check_out", "check_out cannot be before check_in")
	}
	return &Reservation{id: id, customerID: customerID, hotelID: hotelID, checkIn: in, checkOut: out}, nil
}

// BindReservation books a single night at hotel for customer on date.  The
// id is derived as "{customer}-{hotel}-{date}" and one room is reserved on
// the hotel.  A full hotel yields ErrNoRoomsAvailable and no reservation.
func BindReservation(customer *Customer, hotel *Hotel, date string) (*Reservation, error) {
	if customer == nil {
		return nil, invalid("customer", "is required")
	}
	if hotel == nil {
		return nil, invalid("hotel", "is required")
	}
	day, err := ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	if !hotel.ReserveRoom() {
		return nil, fmt.Errorf("hotel %s on %s: %w", hotel.ID, FormatDate(day), ErrNoRoomsAvailable)
	}
	return &Reservation{
		id:         BoundReservationID(customer.ID(), hotel.ID, day),
		customerID: customer.ID(),
		hotelID:    hotel.ID,
		checkIn:    day,
		checkOut:   day,
		customer:   customer,
		hotel:      hotel,
	}, nil
}

// BoundReservationID returns the identifier BindReservation derives.
func BoundReservationID(customerID, hotelID string, day time.Time) string {
	return fmt.Sprintf("%s-%s-%s", customerID, hotelID, FormatDate(day))
}

// Attach sets the live references of a reservation rebuilt from storage.
// Either argument may be nil; a non-nil entity must match the stored id.
func (r *Reservation) Attach(customer *Customer, hotel *Hotel) error {
	if customer != nil && customer.ID() != r.customerID {
		return invalid("customer", "does not match reservation customer_id")
	}
	if hotel != nil && hotel.ID != r.hotelID {
		return invalid("hotel", "does not match reservation hotel_id")
	}
	if customer != nil {
		r.customer = customer
	}
	if hotel != nil {
		r.hotel = hotel
	}
	return nil
}

func (r *Reservation) ID() string          { return r.id }
func (r *Reservation) CustomerID() string  { return r.customerID }
func (r *Reservation) HotelID() string     { return r.hotelID }
func (r *Reservation) CheckIn() time.Time  { return r.checkIn }
func (r *Reservation) CheckOut() time.Time { return r.checkOut }
func (r *Reservation) Customer() *Customer { return r.customer }
func (r *Reservation) Hotel() *Hotel       { return r.hotel }
func (r *Reservation) Cancelled() bool     { return r.cancelled }

// Bound reports whether a live hotel is attached, i.e. whether cancelling
// the reservation can give a room back.
func (r *Reservation) Bound() bool { return r.hotel != nil }

// Nights returns the length of stay.  A same-day reservation counts as one
// night.
func (r *Reservation) Nights() int {
	n := int(r.checkOut.Sub(r.checkIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// Cancel gives the room back to the bound hotel and returns the hotel's
// result.  Without a bound hotel there is nothing to reverse and it returns
// false.  Only the first cancel touches the hotel; later calls return false.
func (r *Reservation) Cancel() (bool, error) {
	if r.checkIn.IsZero() {
		return false, invalid("check_in", "date must be in YYYY-MM-DD format")
	}
	if r.hotel == nil || r.cancelled {
		return false, nil
	}
	r.cancelled = true
	return r.hotel.CancelReservation(), nil
}

// DTO returns the serialized shape of the reservation.
func (r *Reservation) DTO() ReservationDTO {
	return ReservationDTO{
		ReservationID: r.id,
		CustomerID:    r.customerID,
		HotelID:       r.hotelID,
		CheckIn:       FormatDate(r.checkIn),
		CheckOut:      FormatDate(r.checkOut),
	}
}

// ToMap returns the five scalar fields with dates as ISO strings.  Live
// references are not serialized.
func (r *Reservation) ToMap() map[string]any {
	return map[string]any{
		"reservation_id": r.id,
		"customer_id":    r.customerID,
		"hotel_id":       r.hotelID,
		"check_in":       FormatDate(r.checkIn),
		"check_out":      FormatDate(r.checkOut),
	}
}

// ReservationFromMap rebuilds a reservation through NewReservation.  All five
// keys are required.
func ReservationFromMap(data map[string]any) (*Reservation, error) {
	if err := requireKeys(data, "reservation_id", "customer_id", "hotel_id", "check_in", "check_out"); err != nil {
		return nil, err
	}
	var vals [5]string
	for i, k := range []string{"reservation_id", "customer_id", "hotel_id", "check_in", "check_out"} {
		s, err := stringField(data, k)
		if err != nil {
			return nil, err
		}
		vals[i] = s
	}
	return NewReservation(vals[0], vals[1], vals[2], vals[3], vals[4])
}

// Display renders the reservation with one labelled field per line.
func (r *Reservation) Display() string {
	return fmt.Sprintf("Reservation ID: %s\nCustomer ID: %s\nHotel ID: %s\nCheck-in: %s\nCheck-out: %s",
		r.id, r.customerID, r.hotelID, FormatDate(r.checkIn), FormatDate(r.checkOut))
}
