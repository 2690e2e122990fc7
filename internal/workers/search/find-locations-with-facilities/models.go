package findlocationswithfacilities

import "booking-workers/internal/models"

type Input struct {
	Facilities       []string `json:"facilities"`
	ParentLocationID *int64   `json:"parentLocationId,omitempty"`
	LocationKind     string   `json:"locationKind,omitempty"`
	Limit            int      `json:"limit,omitempty"`
	ResponseFormat   string   `json:"responseFormat,omitempty"`
}

type Output struct {
	models.LocationSearchResponse
}
