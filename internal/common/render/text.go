// internal/common/render/text.go
package render

import (
	"fmt"
	"strings"
	"time"

	"booking-workers/internal/models"
)

// Response formats accepted by tools.
const (
	FormatJSON = "json"
	FormatText = "text"
)

const timeLayout = "Mon 2 Jan 15:04 MST"

// WantsText reports whether a tool input asked for a text response.
func WantsText(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), FormatText)
}

// TextResult wraps rendered text as job output variables.
func TextResult(text string) map[string]interface{} {
	return map[string]interface{}{"text": text}
}

// SearchResponse renders a location search response.
func SearchResponse(resp *models.LocationSearchResponse) string {
	var b strings.Builder

	if resp == nil || len(resp.Results) == 0 {
		b.WriteString("No matching locations found.\n")
	} else {
		fmt.Fprintf(&b, "Found %d matching location(s) (scanned %d in %dms)\n",
			resp.TotalMatches, resp.Metadata.TotalLocationsScanned, resp.Metadata.SearchTimeMs)
		for i, r := range resp.Results {
			b.WriteString("\n")
			fmt.Fprintf(&b, "%d. %s, score %.2f\n", i+1, locationLine(&r.Location), r.Score)
			if c, ok := r.Location.EffectiveCapacity(); ok {
				fmt.Fprintf(&b, "   Capacity: %d\n", c)
			}
			for _, d := range r.MatchDetails {
				fmt.Fprintf(&b, "   %s\n", d)
			}
			if r.FacilityInfo != nil && len(r.FacilityInfo.Facilities) > 0 {
				fmt.Fprintf(&b, "   Facilities: %s\n", strings.Join(r.FacilityInfo.Facilities, ", "))
			}
			if r.Availability != nil && r.Availability.Checked {
				fmt.Fprintf(&b, "   Availability: %s\n", availabilityWord(r.Availability))
			}
		}
	}

	if resp != nil && len(resp.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range resp.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Location renders a single resolved location.
func Location(loc *models.Location) string {
	if loc == nil {
		return "Location not found."
	}
	var b strings.Builder
	b.WriteString(locationLine(loc))
	b.WriteString("\n")
	if c, ok := loc.EffectiveCapacity(); ok {
		fmt.Fprintf(&b, "Capacity: %d\n", c)
	}
	if loc.IsBookable {
		b.WriteString("Bookable: yes\n")
	} else {
		b.WriteString("Bookable: no\n")
	}
	if len(loc.Facilities) > 0 {
		names := make([]string, 0, len(loc.Facilities))
		for _, f := range loc.Facilities {
			names = append(names, f.DisplayText())
		}
		fmt.Fprintf(&b, "Facilities: %s\n", strings.Join(names, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Hierarchy renders a location tree, one indented line per node.
func Hierarchy(result *models.HierarchyResult) string {
	if result == nil || len(result.Locations) == 0 {
		return "No locations found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Locations (%d):\n", result.Total)
	writeTree(&b, result.Locations, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, nodes []models.Location, depth int) {
	for i := range nodes {
		fmt.Fprintf(b, "%s- %s\n", strings.Repeat("  ", depth), locationLine(&nodes[i]))
		writeTree(b, nodes[i].Locations, depth+1)
	}
}

// Availability renders an availability answer for one location.
func Availability(loc *models.Location, query models.AvailabilityQuery, result *models.AvailabilityResult) string {
	var b strings.Builder
	name := fmt.Sprintf("Location %d", query.LocationID)
	if loc != nil {
		name = locationLine(loc)
	}
	window := fmt.Sprintf("%s to %s", FormatTime(query.DateFrom), FormatTime(query.DateTo))

	if result != nil && result.Available {
		fmt.Fprintf(&b, "%s is available from %s\n", name, window)
	} else {
		fmt.Fprintf(&b, "%s is not available from %s\n", name, window)
	}
	if result != nil && len(result.Slots) > 0 {
		b.WriteString("Free slots:\n")
		for _, s := range result.Slots {
			fmt.Fprintf(&b, "- %s to %s\n", FormatTime(s.From), FormatTime(s.To))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func locationLine(loc *models.Location) string {
	return fmt.Sprintf("%s [%s] (id %d)", loc.DisplayName(), loc.Kind, loc.ID)
}

func availabilityWord(a *models.AvailabilityInfo) string {
	switch {
	case a.Error != "":
		return "unknown (" + a.Error + ")"
	case a.Available:
		return "available"
	default:
		return "not available"
	}
}

// FormatTime is the layout used for times in rendered text.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}
