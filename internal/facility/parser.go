// internal/facility/parser.go
package facility

import (
	"regexp"
	"strconv"
	"strings"

	"booking-workers/internal/models"
)

// Facility types produced by ParseFacility.
const (
	TypeScreen          = "screen"
	TypeDesk            = "desk"
	TypeVideoConference = "video_conference"
	TypeWhiteboard      = "whiteboard"
	TypePhone           = "phone"
	TypeAccessibility   = "accessibility"
	TypeClimateControl  = "climate_control"
	TypeNetwork         = "network"
	TypePower           = "power"
	TypeOther           = "other"
)

// Desk mechanisms.
const (
	MechanismElectric   = "electric"
	MechanismMechanical = "mechanical"
	MechanismFixed      = "fixed"
)

var screenSizePattern = regexp.MustCompile(`(\d+)["\s]*(inch|"|')?`)

// rule classifies facility text. Rules are evaluated in order and the first
// one whose keywords appear in the lower-cased text wins.
type rule struct {
	keywords []string
	build    func(raw, lower string, f models.Facility) models.ParsedFacility
}

var rules = []rule{
	{
		keywords: []string{"screen", "monitor", "display"},
		build: func(raw, _ string, _ models.Facility) models.ParsedFacility {
			size := 0
			if m := screenSizePattern.FindStringSubmatch(raw); m != nil {
				size, _ = strconv.Atoi(m[1])
			}
			return parsed(TypeScreen, models.CategoryTechnology, raw, map[string]interface{}{
				"size":      size,
				"hasScreen": true,
			})
		},
	},
	{
		keywords: []string{"desk"},
		build: func(raw, lower string, _ models.Facility) models.ParsedFacility {
			mechanism := MechanismFixed
			switch {
			case containsAny(lower, "electric", "motorized"):
				mechanism = MechanismElectric
			case containsAny(lower, "mechanical", "manual"):
				mechanism = MechanismMechanical
			}
			return parsed(TypeDesk, models.CategoryFurniture, raw, map[string]interface{}{
				"adjustable": containsAny(lower, "adjustable", "standing", "sit-stand"),
				"mechanism":  mechanism,
			})
		},
	},
	flagRule(TypeVideoConference, models.CategoryTechnology, "hasVideoConference", "video", "conference", "tv"),
	flagRule(TypeWhiteboard, models.CategoryFurniture, "hasWhiteboard", "whiteboard", "board"),
	flagRule(TypePhone, models.CategoryTechnology, "hasPhone", "phone", "speaker"),
	flagRule(TypeAccessibility, models.CategoryAccessibility, "isAccessible", "accessible", "wheelchair", "disabled"),
	flagRule(TypeClimateControl, models.CategoryComfort, "hasAirConditioning", "air con", "air-con", "ac", "climate"),
	flagRule(TypeNetwork, models.CategoryConnectivity, "hasWifi", "wifi", "wi-fi", "wireless", "network"),
	flagRule(TypePower, models.CategoryConnectivity, "hasPowerOutlets", "power", "socket", "plug", "charging"),
}

func flagRule(facilityType, category, flag string, keywords ...string) rule {
	return rule{
		keywords: keywords,
		build: func(raw, _ string, _ models.Facility) models.ParsedFacility {
			return parsed(facilityType, category, raw, map[string]interface{}{flag: true})
		},
	}
}

func parsed(facilityType, category, raw string, attrs map[string]interface{}) models.ParsedFacility {
	return models.ParsedFacility{
		Type:         facilityType,
		Category:     category,
		Attributes:   attrs,
		OriginalText: raw,
	}
}

// ParseFacility classifies a facility by its display text.
func ParseFacility(f models.Facility) models.ParsedFacility {
	raw := f.DisplayText()
	lower := strings.ToLower(raw)

	for _, r := range rules {
		if containsAny(lower, r.keywords...) {
			return r.build(raw, lower, f)
		}
	}

	category := f.Category
	if category == "" {
		category = models.CategoryOther
	}
	return parsed(TypeOther, category, raw, map[string]interface{}{"text": raw})
}

// ParseFacilities parses every facility and folds the results into a single
// per-location profile.
func ParseFacilities(facilities []models.Facility) ([]models.ParsedFacility, models.AggregatedFacilityProfile) {
	out := make([]models.ParsedFacility, 0, len(facilities))
	var agg models.AggregatedFacilityProfile

	for _, f := range facilities {
		p := ParseFacility(f)
		out = append(out, p)
		absorb(&agg, p)
	}
	return out, agg
}

// absorb ORs boolean attributes into the profile, keeps the largest screen
// size and the first mechanism seen.
func absorb(agg *models.AggregatedFacilityProfile, p models.ParsedFacility) {
	for key, value := range p.Attributes {
		switch v := value.(type) {
		case bool:
			if v {
				setFlag(agg, key)
			}
		case int:
			if key == "size" && v > agg.ScreenSize {
				agg.ScreenSize = v
			}
		case string:
			if key == "mechanism" && agg.Mechanism == "" {
				agg.Mechanism = v
			}
		}
	}
}

func setFlag(agg *models.AggregatedFacilityProfile, key string) {
	switch key {
	case "adjustable":
		agg.Adjustable = true
	case "hasScreen":
		agg.HasScreen = true
	case "hasVideoConference":
		agg.HasVideoConference = true
	case "hasWhiteboard":
		agg.HasWhiteboard = true
	case "hasPhone":
		agg.HasPhone = true
	case "isAccessible":
		agg.IsAccessible = true
	case "hasAirConditioning":
		agg.HasAirConditioning = true
	case "hasWifi":
		agg.HasWifi = true
	case "hasPowerOutlets":
		agg.HasPowerOutlets = true
	default:
		if agg.Flags == nil {
			agg.Flags = make(map[string]bool)
		}
		agg.Flags[key] = true
	}
}

// Info builds the caller-facing facility summary for a location.
func Info(facilities []models.Facility) *models.FacilityInfo {
	_, agg := ParseFacilities(facilities)
	names := make([]string, 0, len(facilities))
	for _, f := range facilities {
		names = append(names, f.DisplayText())
	}
	return &models.FacilityInfo{
		HasAdjustableDesk:  agg.Adjustable,
		DeskMechanism:      agg.Mechanism,
		HasScreen:          agg.HasScreen,
		ScreenSize:         agg.ScreenSize,
		HasVideoConference: agg.HasVideoConference,
		HasWhiteboard:      agg.HasWhiteboard,
		IsAccessible:       agg.IsAccessible,
		HasAirConditioning: agg.HasAirConditioning,
		HasWifi:            agg.HasWifi,
		HasPhone:           agg.HasPhone,
		HasPowerOutlets:    agg.HasPowerOutlets,
		Facilities:         names,
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
