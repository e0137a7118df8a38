package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewReservation_ParsesDates(t *testing.T) {
	r, err := NewReservation("R001", "C001", "H001", "2026-02-21", "2026-02-25")
	if err != nil {
		t.Fatalf("NewReservation: %v", err)
	}
	if !r.CheckIn().Equal(time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected check-in %v", r.CheckIn())
	}
	if !r.CheckOut().Equal(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected check-out %v", r.CheckOut())
	}
	if r.Nights() != 4 {
		t.Fatalf("expected 4 nights, got %d", r.Nights())
	}
	if r.Bound() {
		t.Fatalf("direct-field reservation must not be bound")
	}
}

func TestNewReservation_ValidationOrder(t *testing.T) {
	cases := []struct {
		name                     string
		id, cust, hotel, in, out string
		field                    string
	}{
		{"empty id wins", "", "", "", "bad", "bad", "reservation_id"},
		{"empty customer", "R1", " ", "", "bad", "bad", "customer_id"},
		{"empty hotel", "R1", "C1", "", "bad", "bad", "hotel_id"},
		{"bad check-in", "R1", "C1", "H1", "2026/02/21", "bad", "check_in"},
		{"bad check-out", "R1", "C1", "H1", "2026-02-21", "21-02-2026", "check_out"},
		{"checkout before checkin", "R1", "C1", "H1", "2026-02-25", "2026-02-21", "check_out"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReservation(tc.id, tc.cust, tc.hotel, tc.in, tc.out)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q (%v)", tc.field, ve.Field, ve)
			}
		})
	}
}

func TestReservation_MapRoundTrip(t *testing.T) {
	r, err := NewReservation("R001", "C001", "H001", "2026-02-21", "2026-02-25")
	if err != nil {
		t.Fatal(err)
	}
	data := r.ToMap()
	if data["check_in"] != "2026-02-21" {
		t.Fatalf("dates must serialize as ISO strings, got %v", data["check_in"])
	}
	r2, err := ReservationFromMap(data)
	if err != nil {
		t.Fatalf("ReservationFromMap: %v", err)
	}
	if r2.DTO() != r.DTO() {
		t.Fatalf("round trip mismatch: %+v vs %+v", r2.DTO(), r.DTO())
	}

	delete(data, "check_out")
	if _, err := ReservationFromMap(data); !IsValidation(err) {
		t.Fatalf("expected validation error for missing key, got %v", err)
	}
}

func TestReservation_Display(t *testing.T) {
	r, err := NewReservation("R001", "C001", "H001", "2026-02-21", "2026-02-25")
	if err != nil {
		t.Fatal(err)
	}
	info := r.Display()
	for _, want := range []string{"Reservation ID: R001", "Customer ID: C001", "Hotel ID: H001", "Check-in: 2026-02-21", "Check-out: 2026-02-25"} {
		if !strings.Contains(info, want) {
			t.Fatalf("display missing %q:\n%s", want, info)
		}
	}
}

func bindFixture(t *testing.T, rooms int) (*Customer, *Hotel) {
	t.Helper()
	h, err := NewHotel("1", "Hilton", "NY", rooms)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCustomer("1", "Alice", "alice@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	return c, h
}

func TestBindReservation_ReservesRoom(t *testing.T) {
	c, h := bindFixture(t, 5)
	r, err := BindReservation(c, h, "2026-02-21")
	if err != nil {
		t.Fatalf("BindReservation: %v", err)
	}
	if r.ID() != "1-1-2026-02-21" {
		t.Fatalf("unexpected derived id %q", r.ID())
	}
	if !r.CheckIn().Equal(r.CheckOut()) {
		t.Fatalf("bound reservation must be a single date")
	}
	if r.Nights() != 1 {
		t.Fatalf("expected 1 night, got %d", r.Nights())
	}
	if h.AvailableRooms() != 4 {
		t.Fatalf("expected 4 available, got %d", h.AvailableRooms())
	}
	if r.Customer() != c || r.Hotel() != h {
		t.Fatalf("live references not attached")
	}
}

func TestBindReservation_RejectsBadDate(t *testing.T) {
	c, h := bindFixture(t, 5)
	for _, d := range []string{"2026/02/21", "invalid-date", ""} {
		if _, err := BindReservation(c, h, d); !IsValidation(err) {
			t.Fatalf("date %q: expected validation error, got %v", d, err)
		}
	}
	if h.AvailableRooms() != 5 {
		t.Fatalf("failed construction must not reserve, available=%d", h.AvailableRooms())
	}
}

func TestBindReservation_FullHotel(t *testing.T) {
	c, h := bindFixture(t, 1)
	if _, err := BindReservation(c, h, "2026-02-21"); err != nil {
		t.Fatal(err)
	}
	_, err := BindReservation(c, h, "2026-02-22")
	if !errors.Is(err, ErrNoRoomsAvailable) {
		t.Fatalf("expected ErrNoRoomsAvailable, got %v", err)
	}
	if h.AvailableRooms() != 0 {
		t.Fatalf("expected 0 available, got %d", h.AvailableRooms())
	}
}

func TestReservation_CancelFreesRoomOnce(t *testing.T) {
	c, h := bindFixture(t, 5)
	r, err := BindReservation(c, h, "2026-02-21")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := r.Cancel()
	if err != nil || !ok {
		t.Fatalf("first cancel: ok=%v err=%v", ok, err)
	}
	if h.AvailableRooms() != h.TotalRooms {
		t.Fatalf("room not freed: %d/%d", h.AvailableRooms(), h.TotalRooms)
	}
	if !r.Cancelled() {
		t.Fatalf("reservation should be marked cancelled")
	}

	h.ReserveRoom() // someone else books
	ok, err = r.Cancel()
	if err != nil || ok {
		t.Fatalf("second cancel: ok=%v err=%v", ok, err)
	}
	if h.AvailableRooms() != 4 {
		t.Fatalf("second cancel freed another booking's room: %d", h.AvailableRooms())
	}
}

func TestReservation_CancelWithoutHotel(t *testing.T) {
	r, err := NewReservation("R1", "C1", "H1", "2026-02-21", "2026-02-21")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := r.Cancel()
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}

	var zero Reservation
	if _, err := zero.Cancel(); !IsValidation(err) {
		t.Fatalf("zero reservation should fail date validation, got %v", err)
	}
}

func TestReservation_Attach(t *testing.T) {
	c, h := bindFixture(t, 3)
	r, err := NewReservation("R1", "1", "1", "2026-02-21", "2026-02-21")
	if err != nil {
		t.Fatal(err)
	}
	other, _ := NewHotel("2", "Other", "LA", 3)
	if err := r.Attach(nil, other); !IsValidation(err) {
		t.Fatalf("mismatched hotel should fail, got %v", err)
	}
	if r.Bound() {
		t.Fatalf("failed attach must not bind")
	}
	if err := r.Attach(c, h); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	h.ReserveRoom()
	if ok, _ := r.Cancel(); !ok || h.AvailableRooms() != 3 {
		t.Fatalf("attached cancel should free the room, available=%d", h.AvailableRooms())
	}
}
