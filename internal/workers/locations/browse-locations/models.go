package browselocations

import (
	"booking-workers/internal/location"
	"booking-workers/internal/models"
)

// Input selects either a subtree (Location) or the children of a parent
// (ParentLocationID). With neither, the whole organisation is listed.
type Input struct {
	ParentLocationID  *int64             `json:"parentLocationId,omitempty"`
	Location          location.Reference `json:"location"`
	Kind              string             `json:"kind,omitempty"`
	IncludeFacilities *bool              `json:"includeFacilities,omitempty"`
	BookableOnly      bool               `json:"bookableOnly,omitempty"`
	ResponseFormat    string             `json:"responseFormat,omitempty"`
}

type Output struct {
	Locations []models.Location `json:"locations"`
	Total     int               `json:"total"`
	// RootLocationID is set when a single location subtree was requested.
	RootLocationID int64 `json:"rootLocationId,omitempty"`
}
