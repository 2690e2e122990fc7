// internal/models/search.go
package models

import "time"

// HierarchyQuery scopes a location hierarchy fetch.
type HierarchyQuery struct {
	ParentID          *int64 `json:"parentId,omitempty"`
	LocationID        *int64 `json:"locationId,omitempty"`
	Kind              string `json:"kind,omitempty"`
	IncludeChildren   bool   `json:"includeChildren"`
	IncludeFacilities bool   `json:"includeFacilities"`
	IsBookable        bool   `json:"isBookable"`
}

type HierarchyResult struct {
	Locations []Location `json:"locations"`
	Total     int        `json:"total"`
	Hierarchy *Location  `json:"hierarchy,omitempty"`
}

type LocationSearchRequest struct {
	Requirements     []string   `json:"requirements,omitempty"`
	Capacity         *int       `json:"capacity,omitempty"`
	LocationKind     string     `json:"locationKind,omitempty"`
	DateFrom         *time.Time `json:"dateFrom,omitempty"`
	DateTo           *time.Time `json:"dateTo,omitempty"`
	Limit            int        `json:"limit,omitempty"`
	ParentLocationID *int64     `json:"parentLocationId,omitempty"`
	Query            string     `json:"query,omitempty"`
}

type LocationSearchResult struct {
	Location     Location          `json:"location"`
	Score        float64           `json:"score"`
	MatchDetails []string          `json:"matchDetails"`
	FacilityInfo *FacilityInfo     `json:"facilityInfo,omitempty"`
	Availability *AvailabilityInfo `json:"availability,omitempty"`
}

type SearchMetadata struct {
	SearchTimeMs          int64    `json:"searchTimeMs"`
	TotalLocationsScanned int      `json:"totalLocationsScanned"`
	AvailabilityChecks    int      `json:"availabilityChecks"`
	FiltersApplied        []string `json:"filtersApplied"`
}

type LocationSearchResponse struct {
	Results      []LocationSearchResult `json:"results"`
	TotalMatches int                    `json:"totalMatches"`
	Metadata     SearchMetadata         `json:"metadata"`
	Suggestions  []string               `json:"suggestions,omitempty"`
}

// FacilitySearchOptions narrows FindLocationsWithFacilities.
type FacilitySearchOptions struct {
	ParentLocationID *int64 `json:"parentLocationId,omitempty"`
	LocationKind     string `json:"locationKind,omitempty"`
	Limit            int    `json:"limit,omitempty"`
}
