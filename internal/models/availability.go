// internal/models/availability.go
package models

import "time"

type TimeSlot struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type AvailabilityQuery struct {
	LocationID      int64           `json:"locationId"`
	DateFrom        time.Time       `json:"dateFrom"`
	DateTo          time.Time       `json:"dateTo"`
	BookingCategory BookingCategory `json:"bookingCategory"`
}

// AvailabilityResult is the normalised upstream answer. The booking API
// reports availability either as a boolean or as a list of free slots.
type AvailabilityResult struct {
	LocationID int64      `json:"locationId"`
	Available  bool       `json:"available"`
	Slots      []TimeSlot `json:"slots,omitempty"`
}

// AvailabilityInfo is attached to search results after an availability check.
type AvailabilityInfo struct {
	Checked   bool       `json:"checked"`
	Available bool       `json:"available"`
	Slots     []TimeSlot `json:"slots,omitempty"`
	Error     string     `json:"error,omitempty"`
}
