// internal/booking/client_test.go
package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-workers/internal/common/errors"
	httpclient "booking-workers/internal/common/http"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := httpclient.NewClient(httpclient.Options{
		BaseURL:      server.URL,
		Username:     "svc",
		Password:     "pw",
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
		Logger:       logger.NewTestLogger(t),
	})
	return NewClient(api, 42, logger.NewTestLogger(t))
}

// ==========================
// GetLocation
// ==========================

func TestGetLocation(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location/100003", r.URL.Path)
		assert.Equal(t, "facilities,children", r.URL.Query().Get("include"))
		w.Write([]byte(`{
			"id": 100003,
			"name": "Room 701",
			"kind": "room",
			"capacity": 8,
			"isBookable": true,
			"facilities": [{"text": "55\" Display", "category": "technology"}, {"name": "Whiteboard"}]
		}`))
	})

	loc, err := p.GetLocation(context.Background(), 100003)
	require.NoError(t, err)
	assert.Equal(t, int64(100003), loc.ID)
	assert.Equal(t, models.KindRoom, loc.Kind)
	require.NotNil(t, loc.Capacity)
	assert.Equal(t, 8, *loc.Capacity)
	assert.True(t, loc.IsBookable)
	require.Len(t, loc.Facilities, 2)
	assert.Equal(t, "55_display", loc.Facilities[0].ID)
	assert.Equal(t, "whiteboard", loc.Facilities[1].ID)
}

func TestGetLocation_NotFound(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := p.GetLocation(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

// ==========================
// GetLocationHierarchy
// ==========================

func TestGetLocationHierarchy_Scoped(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/org/42/locations", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "100000", q.Get("l"))
		assert.Equal(t, "children,facilities", q.Get("include"))
		assert.Equal(t, "true", q.Get("bookable"))
		assert.Equal(t, "ROOM", q.Get("kind"))

		w.Write([]byte(`{"locations": [
			{"id": 100001, "name": "Level 7", "kind": "FLOOR", "locations": [
				{"id": 100003, "name": "Room 701", "kind": "ROOM", "bookable": true}
			]}
		], "total": 2}`))
	})

	parent := int64(100000)
	result, err := p.GetLocationHierarchy(context.Background(), models.HierarchyQuery{
		ParentID:          &parent,
		Kind:              "room",
		IncludeChildren:   true,
		IncludeFacilities: true,
		IsBookable:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Locations, 1)

	floor := result.Locations[0]
	assert.Equal(t, parent, floor.ParentID)
	require.Len(t, floor.Locations, 1)
	assert.Equal(t, int64(100001), floor.Locations[0].ParentID)
	assert.True(t, floor.Locations[0].IsBookable)
}

func TestGetLocationHierarchy_MissingBookableFlag(t *testing.T) {
	body := `{"locations": [
		{"id": 100001, "name": "Level 7", "kind": "FLOOR", "locations": [
			{"id": 100003, "name": "Room 701", "kind": "ROOM"},
			{"id": 100004, "name": "Store", "kind": "ROOM", "isBookable": false}
		]}
	]}`
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	tests := []struct {
		name         string
		bookableOnly bool
		leafBookable bool
	}{
		{"bookable-only fetch trusts the filter", true, true},
		{"plain fetch assumes not bookable", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.GetLocationHierarchy(context.Background(), models.HierarchyQuery{
				IncludeChildren: true,
				IsBookable:      tt.bookableOnly,
			})
			require.NoError(t, err)

			floor := result.Locations[0]
			assert.False(t, floor.IsBookable)
			require.Len(t, floor.Locations, 2)
			assert.Equal(t, tt.leafBookable, floor.Locations[0].IsBookable)
			assert.False(t, floor.Locations[1].IsBookable)
		})
	}
}

func TestGetLocationHierarchy_Unscoped(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("l"))
		assert.Empty(t, r.URL.Query().Get("bookable"))
		w.Write([]byte(`{"locations": [{"id": 1, "name": "HQ"}, {"id": 2, "name": "Annex"}]}`))
	})

	result, err := p.GetLocationHierarchy(context.Background(), models.HierarchyQuery{IncludeChildren: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Nil(t, result.Hierarchy)
}

func TestGetLocationHierarchy_ByLocationID(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location/100001", r.URL.Path)
		w.Write([]byte(`{"id": 100001, "name": "Level 7", "locations": [{"id": 100003, "name": "Room 701"}]}`))
	})

	id := int64(100001)
	result, err := p.GetLocationHierarchy(context.Background(), models.HierarchyQuery{LocationID: &id, IncludeChildren: true})
	require.NoError(t, err)
	require.NotNil(t, result.Hierarchy)
	assert.Equal(t, "Level 7", result.Hierarchy.Name)
	assert.Len(t, models.Flatten(result.Locations), 2)
}

func TestGetLocationHierarchy_UpstreamFailure(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.GetLocationHierarchy(context.Background(), models.HierarchyQuery{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUpstreamRequestFailed))
}

// ==========================
// CheckAvailability
// ==========================

func TestCheckAvailability(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(2 * time.Hour)

	tests := []struct {
		name              string
		body              string
		expectedAvailable bool
		expectedSlots     int
		expectErr         bool
	}{
		{name: "boolean true", body: `{"available": true}`, expectedAvailable: true},
		{name: "boolean false", body: `{"available": false}`},
		{name: "missing field", body: `{}`},
		{
			name:              "slot list",
			body:              `{"available": [{"from": "2026-03-02T09:00:00Z", "to": "2026-03-02T10:00:00Z"}]}`,
			expectedAvailable: true,
			expectedSlots:     1,
		},
		{name: "empty slot list", body: `{"available": []}`},
		{name: "garbage", body: `{"available": "maybe"}`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/availability", r.URL.Path)
				q := r.URL.Query()
				assert.Equal(t, "100003", q.Get("l"))
				assert.Equal(t, "2026-03-02T09:00:00Z", q.Get("f"))
				assert.Equal(t, "2026-03-02T11:00:00Z", q.Get("t"))
				assert.Equal(t, "room", q.Get("bc"))
				w.Write([]byte(tt.body))
			})

			result, err := p.CheckAvailability(context.Background(), models.AvailabilityQuery{
				LocationID:      100003,
				DateFrom:        from,
				DateTo:          to,
				BookingCategory: models.BookingCategoryRoom,
			})
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAvailable, result.Available)
			assert.Len(t, result.Slots, tt.expectedSlots)
		})
	}
}

func TestDecodeAvailable_Null(t *testing.T) {
	available, slots, err := decodeAvailable(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.False(t, available)
	assert.Nil(t, slots)
}
