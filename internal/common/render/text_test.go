package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"booking-workers/internal/models"
)

func TestWantsText(t *testing.T) {
	assert.True(t, WantsText("text"))
	assert.True(t, WantsText(" TEXT "))
	assert.False(t, WantsText("json"))
	assert.False(t, WantsText(""))
}

func TestSearchResponse(t *testing.T) {
	resp := &models.LocationSearchResponse{
		Results: []models.LocationSearchResult{
			{
				Location:     models.Location{ID: 701, Name: "Room 701", Kind: models.KindRoom, Capacity: models.IntPtr(6)},
				Score:        1.2,
				MatchDetails: []string{"✓ Screen available", "✓ Exact capacity match (6)"},
				FacilityInfo: &models.FacilityInfo{Facilities: []string{"55\" Screen", "Whiteboard"}},
				Availability: &models.AvailabilityInfo{Checked: true, Available: true},
			},
			{
				Location:     models.Location{ID: 12, Name: "Desk 12", QualifiedName: "Floor 1 / Desk 12", Kind: models.KindDesk},
				Score:        0.5,
				Availability: &models.AvailabilityInfo{Checked: true, Error: "timeout"},
			},
		},
		TotalMatches: 2,
		Metadata:     models.SearchMetadata{SearchTimeMs: 42, TotalLocationsScanned: 9},
	}

	want := "Found 2 matching location(s) (scanned 9 in 42ms)\n" +
		"\n" +
		"1. Room 701 [ROOM] (id 701), score 1.20\n" +
		"   Capacity: 6\n" +
		"   ✓ Screen available\n" +
		"   ✓ Exact capacity match (6)\n" +
		"   Facilities: 55\" Screen, Whiteboard\n" +
		"   Availability: available\n" +
		"\n" +
		"2. Floor 1 / Desk 12 [DESK] (id 12), score 0.50\n" +
		"   Capacity: 1\n" +
		"   Availability: unknown (timeout)"

	assert.Equal(t, want, SearchResponse(resp))
}

func TestSearchResponse_NoResultsWithSuggestions(t *testing.T) {
	resp := &models.LocationSearchResponse{
		Results:     []models.LocationSearchResult{},
		Suggestions: []string{"Try a smaller capacity"},
	}

	assert.Equal(t, "No matching locations found.\n\nSuggestions:\n- Try a smaller capacity", SearchResponse(resp))
	assert.Equal(t, "No matching locations found.", SearchResponse(nil))
}

func TestLocation(t *testing.T) {
	loc := &models.Location{
		ID:         701,
		Name:       "Room 701",
		Kind:       models.KindRoom,
		IsBookable: true,
		Facilities: []models.Facility{{Name: "Whiteboard"}, {Text: "Wheelchair accessible"}},
	}

	assert.Equal(t, "Room 701 [ROOM] (id 701)\nBookable: yes\nFacilities: Whiteboard, Wheelchair accessible", Location(loc))
	assert.Equal(t, "Location not found.", Location(nil))
}

func TestHierarchy(t *testing.T) {
	result := &models.HierarchyResult{
		Total: 1,
		Locations: []models.Location{
			{ID: 1, Name: "HQ", Kind: models.KindBuilding, Locations: []models.Location{
				{ID: 2, Name: "Floor 7", Kind: models.KindFloor, Locations: []models.Location{
					{ID: 701, Name: "Room 701", Kind: models.KindRoom},
				}},
			}},
		},
	}

	want := "Locations (1):\n" +
		"- HQ [BUILDING] (id 1)\n" +
		"  - Floor 7 [FLOOR] (id 2)\n" +
		"    - Room 701 [ROOM] (id 701)"
	assert.Equal(t, want, Hierarchy(result))
	assert.Equal(t, "No locations found.", Hierarchy(&models.HierarchyResult{}))
}

func TestAvailability(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	query := models.AvailabilityQuery{LocationID: 701, DateFrom: from, DateTo: to}

	got := Availability(nil, query, &models.AvailabilityResult{
		LocationID: 701,
		Available:  true,
		Slots:      []models.TimeSlot{{From: from, To: to}},
	})
	assert.Equal(t, "Location 701 is available from Mon 2 Mar 09:00 UTC to Mon 2 Mar 10:00 UTC\n"+
		"Free slots:\n- Mon 2 Mar 09:00 UTC to Mon 2 Mar 10:00 UTC", got)

	loc := &models.Location{ID: 701, Name: "Room 701", Kind: models.KindRoom}
	got = Availability(loc, query, &models.AvailabilityResult{LocationID: 701})
	assert.Equal(t, "Room 701 [ROOM] (id 701) is not available from Mon 2 Mar 09:00 UTC to Mon 2 Mar 10:00 UTC", got)
}
