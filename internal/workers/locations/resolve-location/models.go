package resolvelocation

import (
	"booking-workers/internal/location"
	"booking-workers/internal/models"
)

type Input struct {
	Location       location.Reference `json:"location"`
	ResponseFormat string             `json:"responseFormat,omitempty"`
}

type Output struct {
	LocationID int64            `json:"locationId"`
	Location   *models.Location `json:"location"`
	// ReferenceKind is how the reference was read: location_id, room_number,
	// desk_id, desk_bank_number or free_text.
	ReferenceKind string `json:"referenceKind"`
}
