package checkavailability

import (
	"time"

	"booking-workers/internal/location"
	"booking-workers/internal/models"
)

type Input struct {
	Location       location.Reference `json:"location"`
	DateFrom       string             `json:"dateFrom"`
	DateTo         string             `json:"dateTo,omitempty"`
	ResponseFormat string             `json:"responseFormat,omitempty"`
}

type Output struct {
	LocationID      int64                  `json:"locationId"`
	Location        *models.Location       `json:"location"`
	BookingCategory models.BookingCategory `json:"bookingCategory"`
	DateFrom        time.Time              `json:"dateFrom"`
	DateTo          time.Time              `json:"dateTo"`
	Available       bool                   `json:"available"`
	Slots           []models.TimeSlot      `json:"slots,omitempty"`
}
