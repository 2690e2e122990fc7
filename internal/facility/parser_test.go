// internal/facility/parser_test.go
package facility

import (
	"strconv"
	"testing"

	"booking-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// ParseFacility
// ==========================

func TestParseFacility_RuleOrder(t *testing.T) {
	tests := []struct {
		name         string
		facility     models.Facility
		expectedType string
		expectedCat  string
		expectedAttr map[string]interface{}
	}{
		{
			name:         "screen with size",
			facility:     models.Facility{Text: `34" Screen`},
			expectedType: TypeScreen,
			expectedCat:  models.CategoryTechnology,
			expectedAttr: map[string]interface{}{"size": 34, "hasScreen": true},
		},
		{
			name:         "monitor without size",
			facility:     models.Facility{Name: "Monitor"},
			expectedType: TypeScreen,
			expectedCat:  models.CategoryTechnology,
			expectedAttr: map[string]interface{}{"size": 0, "hasScreen": true},
		},
		{
			name:         "mechanical adjustable desk",
			facility:     models.Facility{Text: "Adjustable Desk - Mechanical"},
			expectedType: TypeDesk,
			expectedCat:  models.CategoryFurniture,
			expectedAttr: map[string]interface{}{"adjustable": true, "mechanism": MechanismMechanical},
		},
		{
			name:         "electric standing desk",
			facility:     models.Facility{Text: "Motorized standing desk"},
			expectedType: TypeDesk,
			expectedCat:  models.CategoryFurniture,
			expectedAttr: map[string]interface{}{"adjustable": true, "mechanism": MechanismElectric},
		},
		{
			name:         "fixed desk",
			facility:     models.Facility{Text: "Desk"},
			expectedType: TypeDesk,
			expectedCat:  models.CategoryFurniture,
			expectedAttr: map[string]interface{}{"adjustable": false, "mechanism": MechanismFixed},
		},
		{
			name:         "screen wins over desk",
			facility:     models.Facility{Text: "Desk with 27 inch monitor"},
			expectedType: TypeScreen,
			expectedCat:  models.CategoryTechnology,
			expectedAttr: map[string]interface{}{"size": 27, "hasScreen": true},
		},
		{
			name:         "video conference",
			facility:     models.Facility{Text: "Video Conferencing"},
			expectedType: TypeVideoConference,
			expectedCat:  models.CategoryTechnology,
			expectedAttr: map[string]interface{}{"hasVideoConference": true},
		},
		{
			name:         "tv counts as video conference",
			facility:     models.Facility{Text: "Wall TV"},
			expectedType: TypeVideoConference,
			expectedCat:  models.CategoryTechnology,
			expectedAttr: map[string]interface{}{"hasVideoConference": true},
		},
		{
			name:         "whiteboard",
			facility:     models.Facility{Text: "Whiteboard"},
			expectedType: TypeWhiteboard,
			expectedCat:  models.CategoryFurniture,
			expectedAttr: map[string]interface{}{"hasWhiteboard": true},
		},
		{
			name:         "speaker phone",
			facility:     models.Facility{Text: "Speaker Phone"},
			expectedType: TypePhone,
			expectedCat:  models.CategoryTechnology,
			expectedAttr: map[string]interface{}{"hasPhone": true},
		},
		{
			name:         "wheelchair access",
			facility:     models.Facility{Text: "Wheelchair Access"},
			expectedType: TypeAccessibility,
			expectedCat:  models.CategoryAccessibility,
			expectedAttr: map[string]interface{}{"isAccessible": true},
		},
		{
			name:         "air conditioning",
			facility:     models.Facility{Text: "Air-Con"},
			expectedType: TypeClimateControl,
			expectedCat:  models.CategoryComfort,
			expectedAttr: map[string]interface{}{"hasAirConditioning": true},
		},
		{
			name:         "wifi",
			facility:     models.Facility{Text: "Wi-Fi"},
			expectedType: TypeNetwork,
			expectedCat:  models.CategoryConnectivity,
			expectedAttr: map[string]interface{}{"hasWifi": true},
		},
		{
			name:         "power sockets",
			facility:     models.Facility{Text: "USB Charging Point"},
			expectedType: TypePower,
			expectedCat:  models.CategoryConnectivity,
			expectedAttr: map[string]interface{}{"hasPowerOutlets": true},
		},
		{
			name:         "unknown keeps own category",
			facility:     models.Facility{Text: "Kettle", Category: models.CategoryCatering},
			expectedType: TypeOther,
			expectedCat:  models.CategoryCatering,
			expectedAttr: map[string]interface{}{"text": "Kettle"},
		},
		{
			name:         "unknown without category",
			facility:     models.Facility{Text: "Plant"},
			expectedType: TypeOther,
			expectedCat:  models.CategoryOther,
			expectedAttr: map[string]interface{}{"text": "Plant"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseFacility(tt.facility)
			assert.Equal(t, tt.expectedType, p.Type)
			assert.Equal(t, tt.expectedCat, p.Category)
			assert.Equal(t, tt.expectedAttr, p.Attributes)
			assert.Equal(t, tt.facility.DisplayText(), p.OriginalText)
		})
	}
}

func TestParseFacility_TextPreferredOverName(t *testing.T) {
	p := ParseFacility(models.Facility{Name: "Whiteboard", Text: "24 inch display"})
	assert.Equal(t, TypeScreen, p.Type)
	assert.Equal(t, 24, p.Attributes["size"])
}

func TestParseFacility_ScreenSizeFromLeadingInteger(t *testing.T) {
	for _, n := range []int{13, 24, 27, 34, 55, 85} {
		p := ParseFacility(models.Facility{Text: strconv.Itoa(n) + `" Screen`})
		assert.Equal(t, n, p.Attributes["size"])
		assert.Equal(t, true, p.Attributes["hasScreen"])
	}
}

// ==========================
// ParseFacilities aggregation
// ==========================

func TestParseFacilities_Aggregation(t *testing.T) {
	facilities := []models.Facility{
		{Text: `24" Monitor`},
		{Text: "Desk"},
		{Text: "Electric standing desk"},
		{Text: `34" Screen`},
		{Text: "Whiteboard"},
		{Text: "Wi-Fi"},
	}

	parsed, agg := ParseFacilities(facilities)
	require.Len(t, parsed, len(facilities))

	assert.True(t, agg.HasScreen)
	assert.Equal(t, 34, agg.ScreenSize)
	assert.True(t, agg.Adjustable, "a later adjustable desk still sets the flag")
	assert.Equal(t, MechanismFixed, agg.Mechanism, "first mechanism wins")
	assert.True(t, agg.HasWhiteboard)
	assert.True(t, agg.HasWifi)
	assert.False(t, agg.HasPhone)
	assert.False(t, agg.IsAccessible)
}

func TestParseFacilities_Empty(t *testing.T) {
	parsed, agg := ParseFacilities(nil)
	assert.Empty(t, parsed)
	assert.Equal(t, models.AggregatedFacilityProfile{}, agg)
}

func TestInfo(t *testing.T) {
	info := Info([]models.Facility{
		{Text: "Adjustable Desk - Mechanical"},
		{Name: "Power Socket"},
	})
	assert.True(t, info.HasAdjustableDesk)
	assert.Equal(t, MechanismMechanical, info.DeskMechanism)
	assert.True(t, info.HasPowerOutlets)
	assert.Equal(t, []string{"Adjustable Desk - Mechanical", "Power Socket"}, info.Facilities)
}
