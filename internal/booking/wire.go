// internal/booking/wire.go
package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"booking-workers/internal/models"
)

// Upstream payloads. The booking API is loose about field presence, so
// everything optional is a pointer or omitted.

type apiFacility struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

type apiLocation struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Kind          string        `json:"kind"`
	QualifiedName string        `json:"qualifiedName"`
	Capacity      *int          `json:"capacity"`
	Facilities    []apiFacility `json:"facilities"`
	Locations     []apiLocation `json:"locations"`
	ParentID      int64         `json:"parentId"`
	Bookable      *bool         `json:"bookable"`
	IsBookable    *bool         `json:"isBookable"`
}

type apiLocationList struct {
	Locations []apiLocation `json:"locations"`
	Total     *int          `json:"total"`
}

type apiSlot struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type apiAvailability struct {
	Available json.RawMessage `json:"available"`
}

// toModel converts an upstream location. bookableOnly marks a fetch made with
// bookable=true: a leaf there that carries no bookable flag is bookable,
// since the API already filtered on it.
func (l apiLocation) toModel(parentID int64, bookableOnly bool) models.Location {
	loc := models.Location{
		ID:            l.ID,
		Name:          l.Name,
		Kind:          strings.ToUpper(l.Kind),
		QualifiedName: l.QualifiedName,
		Capacity:      l.Capacity,
		ParentID:      l.ParentID,
	}
	if loc.ParentID == 0 {
		loc.ParentID = parentID
	}

	switch {
	case l.IsBookable != nil:
		loc.IsBookable = *l.IsBookable
	case l.Bookable != nil:
		loc.IsBookable = *l.Bookable
	default:
		loc.IsBookable = bookableOnly && len(l.Locations) == 0
	}

	if len(l.Facilities) > 0 {
		loc.Facilities = make([]models.Facility, 0, len(l.Facilities))
		for _, f := range l.Facilities {
			loc.Facilities = append(loc.Facilities, f.toModel())
		}
	}

	if len(l.Locations) > 0 {
		loc.Locations = make([]models.Location, 0, len(l.Locations))
		for _, child := range l.Locations {
			loc.Locations = append(loc.Locations, child.toModel(l.ID, bookableOnly))
		}
	}
	return loc
}

func (f apiFacility) toModel() models.Facility {
	out := models.Facility{
		ID:       f.ID,
		Name:     f.Name,
		Text:     f.Text,
		Category: f.Category,
	}
	if out.ID == "" {
		out.ID = models.FacilityID(out.DisplayText())
	}
	return out
}

// decodeAvailable reads the upstream "available" field, which is either a
// boolean or a list of free slots.
func decodeAvailable(raw json.RawMessage) (bool, []models.TimeSlot, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil, nil
	}

	switch raw[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return false, nil, err
		}
		return b, nil, nil
	case '[':
		var slots []apiSlot
		if err := json.Unmarshal(raw, &slots); err != nil {
			return false, nil, err
		}
		out := make([]models.TimeSlot, 0, len(slots))
		for _, s := range slots {
			out = append(out, models.TimeSlot{From: s.From, To: s.To})
		}
		return len(out) > 0, out, nil
	default:
		return false, nil, fmt.Errorf("unexpected availability payload %s", string(raw))
	}
}
