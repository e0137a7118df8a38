// Package model holds the reservation domain: customers, hotels with a room
// inventory counter, and reservations that drive that counter.
//
// The package performs no I/O and holds no process-wide state.  Callers that
// share a Hotel between goroutines must serialize ReserveRoom and
// CancelReservation themselves (see service.HotelLocks).
package model
