package searchbyquery

import "booking-workers/internal/models"

type Input struct {
	Query          string `json:"query"`
	ResponseFormat string `json:"responseFormat,omitempty"`
}

type Output struct {
	Query string `json:"query"`
	models.LocationSearchResponse
}
