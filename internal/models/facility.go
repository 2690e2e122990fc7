// internal/models/facility.go
package models

import (
	"regexp"
	"strings"
)

// Facility categories.
const (
	CategoryAudioVisual   = "audio_visual"
	CategoryConnectivity  = "connectivity"
	CategoryFurniture     = "furniture"
	CategoryAccessibility = "accessibility"
	CategoryCatering      = "catering"
	CategoryTechnology    = "technology"
	CategoryComfort       = "comfort"
	CategoryOther         = "other"
)

// Facility is an amenity attached to a location.
type Facility struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text,omitempty"`
	Category string `json:"category,omitempty"`
}

// DisplayText returns Text when present, otherwise Name.
func (f Facility) DisplayText() string {
	if f.Text != "" {
		return f.Text
	}
	return f.Name
}

var nonIDChars = regexp.MustCompile(`[^a-z0-9]+`)

// FacilityID derives a stable identifier from facility text.
func FacilityID(text string) string {
	id := nonIDChars.ReplaceAllString(strings.ToLower(text), "_")
	return strings.Trim(id, "_")
}

// ParsedFacility is the structured reading of a facility's display text.
type ParsedFacility struct {
	Type         string                 `json:"type"`
	Category     string                 `json:"category"`
	Attributes   map[string]interface{} `json:"attributes"`
	OriginalText string                 `json:"originalText"`
}

// AggregatedFacilityProfile summarises every parsed facility of one location.
type AggregatedFacilityProfile struct {
	Adjustable         bool   `json:"adjustable"`
	Mechanism          string `json:"mechanism,omitempty"`
	HasScreen          bool   `json:"hasScreen"`
	ScreenSize         int    `json:"screenSize"`
	HasVideoConference bool   `json:"hasVideoConference"`
	HasWhiteboard      bool   `json:"hasWhiteboard"`
	HasPhone           bool   `json:"hasPhone"`
	IsAccessible       bool   `json:"isAccessible"`
	HasAirConditioning bool   `json:"hasAirConditioning"`
	HasWifi            bool   `json:"hasWifi"`
	HasPowerOutlets    bool   `json:"hasPowerOutlets"`
	// Flags holds any other true boolean attribute seen.
	Flags map[string]bool `json:"flags,omitempty"`
}

// MatchResult is the outcome of testing facilities against requirements.
type MatchResult struct {
	Matches bool     `json:"matches"`
	Score   float64  `json:"score"`
	Details []string `json:"details"`
}

// FacilityInfo is the per-result facility summary exposed to callers.
type FacilityInfo struct {
	HasAdjustableDesk  bool     `json:"hasAdjustableDesk"`
	DeskMechanism      string   `json:"deskMechanism,omitempty"`
	HasScreen          bool     `json:"hasScreen"`
	ScreenSize         int      `json:"screenSize,omitempty"`
	HasVideoConference bool     `json:"hasVideoConference"`
	HasWhiteboard      bool     `json:"hasWhiteboard"`
	IsAccessible       bool     `json:"isAccessible"`
	HasAirConditioning bool     `json:"hasAirConditioning"`
	HasWifi            bool     `json:"hasWifi"`
	HasPhone           bool     `json:"hasPhone"`
	HasPowerOutlets    bool     `json:"hasPowerOutlets"`
	Facilities         []string `json:"facilities"`
}
