// Package queue defines the reservation events exchanged over RabbitMQ and
// the background consumer that records them.
package queue

import (
    "fmt"
    "time"
)

// ReservationQueueName is the durable queue both the publisher and the
// consumer declare.
const ReservationQueueName = "reservation.events"

// Event types.
const (
    EventBooked    = "reservation.booked"
    EventRecorded  = "reservation.recorded"
    EventCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a reservation transaction commits.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.  AvailableRooms is the hotel
// counter right after the change, or -1 when the inventory was not touched.
type ReservationEvent struct {
    Type           string `json:"type"`
    ReservationID  string `json:"reservation_id"`
    CustomerID     string `json:"customer_id"`
    HotelID        string `json:"hotel_id"`
    CheckIn        string `json:"check_in"`
    CheckOut       string `json:"check_out"`
    AvailableRooms int    `json:"available_rooms"`
    OccurredAt     string `json:"occurred_at"`
}

// Stamp sets OccurredAt to t in RFC 3339 UTC.
func (e *ReservationEvent) Stamp(t time.Time) {
    e.OccurredAt = t.UTC().Format(time.RFC3339)
}

// Validate rejects events a consumer cannot record.
func (e ReservationEvent) Validate() error {
    switch e.Type {
    case EventBooked, EventRecorded, EventCancelled:
    default:
        return fmt.Errorf("unknown event type %q", e.Type)
    }
    if e.ReservationID == "" {
        return fmt.Errorf("event %s without reservation_id", e.Type)
    }
    return nil
}

// LogLine renders the event as a single line for the reservations log.
func (e ReservationEvent) LogLine() string {
    rooms := "n/a"
    if e.AvailableRooms >= 0 {
        rooms = fmt.Sprintf("%d", e.AvailableRooms)
    }
    return fmt.Sprintf("[%s] %s | reservation_id=%s | customer_id=%s | hotel_id=%s | check_in=%s | check_out=%s | available_rooms=%s\n",
        e.OccurredAt, e.Type, e.ReservationID, e.CustomerID, e.HotelID, e.CheckIn, e.CheckOut, rooms)
}
