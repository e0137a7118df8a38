package model

import (
	"fmt"
	"strings"
)

// Hotel is a bookable property with a room inventory counter.
//
// Fields:
//  ID         – hotels.id
//  Name       – display name, editable by administrators.
//  Location   – free-form location, editable by administrators.
//  TotalRooms – capacity.  Editing it does not clamp the available count;
//               callers that shrink capacity must reconcile it themselves.
//
// The available count is only changed by ReserveRoom and CancelReservation,
// which keep 0 <= available <= TotalRooms.
type Hotel struct {
	ID         string
	Name       string
	Location   string
	TotalRooms int

	availableRooms int
}

// HotelDTO is the flat serialized shape of a Hotel.
type HotelDTO struct {
	HotelID        string `json:"hotel_id" yaml:"hotel_id"`
	Name           string `json:"name" yaml:"name"`
	Location       string `json:"location" yaml:"location"`
	TotalRooms     int    `json:"total_rooms" yaml:"total_rooms"`
	AvailableRooms int    `json:"available_rooms" yaml:"available_rooms"`
}

// NewHotel returns a hotel with every room available.
func NewHotel(id, name, location string, totalRooms int) (*Hotel, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("hotel_id", "must be a non-empty string")
	}
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "must be a non-empty string")
	}
	if totalRooms < 1 {
		return nil, invalid("total_rooms", "must be a positive integer")
	}
	return &Hotel{
		ID:             id,
		Name:           name,
		Location:       location,
		TotalRooms:     totalRooms,
		availableRooms: totalRooms,
	}, nil
}

// RestoreHotel rebuilds a hotel from persisted counters.  It rejects counts
// that break the inventory bound.
func RestoreHotel(id, name, location string, totalRooms, availableRooms int) (*Hotel, error) {
	h, err := NewHotel(id, name, location, totalRooms)
	if err != nil {
		return nil, err
	}
	if availableRooms < 0 || availableRooms > totalRooms {
		return nil, invalid("available_rooms", fmt.Sprintf("must be between 0 and %d", totalRooms))
	}
	h.availableRooms = availableRooms
	return h, nil
}

// AvailableRooms returns the remaining bookable capacity.
func (h *Hotel) AvailableRooms() int { return h.availableRooms }

// ReserveRoom takes one room.  It returns false and changes nothing when the
// hotel is full; exhaustion is an expected outcome, not an error.
func (h *Hotel) ReserveRoom() bool {
	if h.availableRooms <= 0 {
		return false
	}
	h.availableRooms--
	return true
}

// CancelReservation frees one room.  It returns false and changes nothing
// when every room is already available.
func (h *Hotel) CancelReservation() bool {
	if h.availableRooms >= h.TotalRooms {
		return false
	}
	h.availableRooms++
	return true
}

// Booked returns the number of rooms currently taken.
func (h *Hotel) Booked() int { return h.TotalRooms - h.availableRooms }

// Resize changes capacity while keeping the booked rooms booked, so the
// available count moves by the same delta.  Shrinking below the booked
// count is rejected.  Assigning TotalRooms directly skips this
// reconciliation.
func (h *Hotel) Resize(totalRooms int) error {
	if totalRooms < 1 {
		return invalid("total_rooms", "must be a positive integer")
	}
	booked := h.Booked()
	if booked < 0 {
		booked = 0
	}
	if totalRooms < booked {
		return invalid("total_rooms", fmt.Sprintf("cannot drop below %d booked rooms", booked))
	}
	h.TotalRooms = totalRooms
	h.availableRooms = totalRooms - booked
	return nil
}

// DTO returns the serialized shape of the hotel.
func (h *Hotel) DTO() HotelDTO {
	return HotelDTO{
		HotelID:        h.ID,
		Name:           h.Name,
		Location:       h.Location,
		TotalRooms:     h.TotalRooms,
		AvailableRooms: h.availableRooms,
	}
}

// ToMap returns the hotel fields keyed by their wire names.
func (h *Hotel) ToMap() map[string]any {
	return map[string]any{
		"hotel_id":        h.ID,
		"name":            h.Name,
		"location":        h.Location,
		"total_rooms":     h.TotalRooms,
		"available_rooms": h.availableRooms,
	}
}

// HotelFromMap rebuilds a Hotel from ToMap output.  available_rooms is
// optional and defaults to total_rooms.
func HotelFromMap(data map[string]any) (*Hotel, error) {
	if err := requireKeys(data, "hotel_id", "name", "location", "total_rooms"); err != nil {
		return nil, err
	}
	id, err := stringField(data, "hotel_id")
	if err != nil {
		return nil, err
	}
	name, err := stringField(data, "name")
	if err != nil {
		return nil, err
	}
	location, err := stringField(data, "location")
	if err != nil {
		return nil, err
	}
	total, ok := scalarInt(data["total_rooms"])
	if !ok {
		return nil, invalid("total_rooms", "must be an integer")
	}
	available := total
	if v, present := data["available_rooms"]; present {
		if available, ok = scalarInt(v); !ok {
			return nil, invalid("available_rooms", "must be an integer")
		}
	}
	return RestoreHotel(id, name, location, total, available)
}

// Display renders the hotel; it always contains the line "Hotel ID: <id>".
func (h *Hotel) Display() string {
	return fmt.Sprintf("Hotel ID: %s\nName: %s\nLocation: %s\nTotal Rooms: %d\nAvailable Rooms: %d",
		h.ID, h.Name, h.Location, h.TotalRooms, h.availableRooms)
}
