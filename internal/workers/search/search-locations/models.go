// internal/workers/search/search-locations/models.go
package searchlocations

import (
	"booking-workers/internal/location"
	"booking-workers/internal/models"
)

type Input struct {
	Requirements     []string           `json:"requirements,omitempty"`
	Capacity         *int               `json:"capacity,omitempty"`
	LocationKind     string             `json:"locationKind,omitempty"`
	DateFrom         string             `json:"dateFrom,omitempty"`
	DateTo           string             `json:"dateTo,omitempty"`
	Limit            int                `json:"limit,omitempty"`
	ParentLocationID *int64             `json:"parentLocationId,omitempty"`
	Within           location.Reference `json:"within"`
	Query            string             `json:"query,omitempty"`
	ResponseFormat   string             `json:"responseFormat,omitempty"`
}

type Output struct {
	models.LocationSearchResponse
}
