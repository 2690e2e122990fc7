// internal/facility/matcher.go
package facility

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"booking-workers/internal/models"
)

// Matcher tests a location's facilities against a list of requirements.
//
// Two implementations exist and they deliberately disagree on an empty
// requirement list: AggregatedMatcher scores it 0, SimpleMatcher scores it 1.
type Matcher interface {
	Match(facilities []models.Facility, requirements []string) models.MatchResult
}

// AggregatedMatcher evaluates requirements against the OR-reduced facility
// profile of a location and explains every check it performs.
type AggregatedMatcher struct{}

// SimpleMatcher looks for a facility per requirement by type or text.
type SimpleMatcher struct{}

var (
	_ Matcher = AggregatedMatcher{}
	_ Matcher = SimpleMatcher{}
)

// check is one facility test. A requirement runs every check whose
// triggers it mentions.
type check struct {
	triggered func(req string) bool
	eval      func(req string, agg models.AggregatedFacilityProfile) (bool, string)
}

func mentions(keywords ...string) func(string) bool {
	return func(req string) bool { return containsAny(req, keywords...) }
}

var firstNumber = regexp.MustCompile(`\d+`)

var checks = []check{
	{
		triggered: mentions("adjustable", "standing", "sit-stand", "height", "electric", "mechanical"),
		eval: func(req string, agg models.AggregatedFacilityProfile) (bool, string) {
			if !agg.Adjustable {
				return false, "✗ No adjustable desk"
			}
			want := ""
			switch {
			case strings.Contains(req, MechanismElectric):
				want = MechanismElectric
			case strings.Contains(req, MechanismMechanical):
				want = MechanismMechanical
			}
			if want != "" && agg.Mechanism != want {
				return false, fmt.Sprintf("✗ Adjustable desk is %s, %s required", agg.Mechanism, want)
			}
			return true, fmt.Sprintf("✓ Adjustable desk (%s)", agg.Mechanism)
		},
	},
	{
		triggered: mentions("screen", "monitor", "display"),
		eval: func(req string, agg models.AggregatedFacilityProfile) (bool, string) {
			if !agg.HasScreen {
				return false, "✗ No screen"
			}
			if m := firstNumber.FindString(req); m != "" {
				required, _ := strconv.Atoi(m)
				if agg.ScreenSize >= required {
					return true, fmt.Sprintf("✓ %d\" screen (%d\"+ required)", agg.ScreenSize, required)
				}
				return false, fmt.Sprintf("✗ Screen is %d\", %d\"+ required", agg.ScreenSize, required)
			}
			if agg.ScreenSize > 0 {
				return true, fmt.Sprintf("✓ Screen available (%d\")", agg.ScreenSize)
			}
			return true, "✓ Screen available"
		},
	},
	flagCheck("Video conferencing", func(a models.AggregatedFacilityProfile) bool { return a.HasVideoConference },
		mentions("video", "conference", "zoom", "teams", "tv")),
	flagCheck("Whiteboard", func(a models.AggregatedFacilityProfile) bool { return a.HasWhiteboard },
		mentions("whiteboard", "board")),
	flagCheck("Wheelchair accessible", func(a models.AggregatedFacilityProfile) bool { return a.IsAccessible },
		mentions("accessible", "wheelchair", "disabled")),
	// "air" alone is the canonical extracted term; as a substring it would
	// also hit "wheelchair".
	flagCheck("Air conditioning", func(a models.AggregatedFacilityProfile) bool { return a.HasAirConditioning },
		func(req string) bool {
			return req == "air" || containsAny(req, "air con", "air-con", "aircon", "air conditioning", "climate", "cooling")
		}),
	flagCheck("WiFi", func(a models.AggregatedFacilityProfile) bool { return a.HasWifi },
		mentions("wifi", "wi-fi", "wireless", "internet", "network")),
	flagCheck("Phone", func(a models.AggregatedFacilityProfile) bool { return a.HasPhone },
		mentions("phone", "speaker")),
	flagCheck("Power outlets", func(a models.AggregatedFacilityProfile) bool { return a.HasPowerOutlets },
		mentions("power", "socket", "plug", "charging", "outlet")),
}

func flagCheck(label string, has func(models.AggregatedFacilityProfile) bool, triggered func(string) bool) check {
	return check{
		triggered: triggered,
		eval: func(_ string, agg models.AggregatedFacilityProfile) (bool, string) {
			if has(agg) {
				return true, "✓ " + label
			}
			return false, "✗ No " + label
		},
	}
}

// Match implements Matcher. A requirement counts as matched when it
// triggers at least one check and every triggered check passes. A
// requirement no check recognises ("catering") is never matched.
func (AggregatedMatcher) Match(facilities []models.Facility, requirements []string) models.MatchResult {
	_, agg := ParseFacilities(facilities)

	details := []string{}
	matched := 0
	for _, requirement := range requirements {
		req := strings.ToLower(strings.TrimSpace(requirement))
		fired, ok := 0, true
		for _, c := range checks {
			if !c.triggered(req) {
				continue
			}
			fired++
			pass, line := c.eval(req, agg)
			details = append(details, line)
			if !pass {
				ok = false
			}
		}
		if fired > 0 && ok {
			matched++
		}
	}

	score := 0.0
	if len(requirements) > 0 {
		score = float64(matched) / float64(len(requirements))
	}
	return models.MatchResult{
		Matches: matched == len(requirements),
		Score:   score,
		Details: details,
	}
}

// Match implements Matcher.
func (SimpleMatcher) Match(facilities []models.Facility, requirements []string) models.MatchResult {
	if len(requirements) == 0 {
		return models.MatchResult{Matches: true, Score: 1, Details: []string{}}
	}

	parsedFacilities, _ := ParseFacilities(facilities)

	details := make([]string, 0, len(requirements))
	matched := 0
	for _, requirement := range requirements {
		req := strings.ToLower(strings.TrimSpace(requirement))
		found := ""
		for _, p := range parsedFacilities {
			if p.Type == req || strings.Contains(strings.ToLower(p.OriginalText), req) {
				found = p.OriginalText
				break
			}
		}
		if found != "" {
			matched++
			details = append(details, fmt.Sprintf("Has %s (%s)", requirement, found))
		} else {
			details = append(details, fmt.Sprintf("Missing %s", requirement))
		}
	}

	return models.MatchResult{
		Matches: matched == len(requirements),
		Score:   float64(matched) / float64(len(requirements)),
		Details: details,
	}
}

// MatchAggregated runs the aggregated matcher.
func MatchAggregated(facilities []models.Facility, requirements []string) models.MatchResult {
	return AggregatedMatcher{}.Match(facilities, requirements)
}

// MatchSimple runs the simple matcher.
func MatchSimple(facilities []models.Facility, requirements []string) models.MatchResult {
	return SimpleMatcher{}.Match(facilities, requirements)
}
