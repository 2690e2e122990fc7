// internal/models/location.go
package models

import "strings"

// Location is a node of the organisation's location hierarchy
// (building -> floor -> room/desk).
type Location struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Kind          string     `json:"kind"`
	QualifiedName string     `json:"qualifiedName,omitempty"`
	Capacity      *int       `json:"capacity,omitempty"`
	Facilities    []Facility `json:"facilities,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	ParentID      int64      `json:"parentId,omitempty"`
	IsBookable    bool       `json:"isBookable"`
}

// EffectiveCapacity returns the location capacity, treating desks as
// single-seat when the upstream leaves capacity unset.
func (l *Location) EffectiveCapacity() (int, bool) {
	if l.Capacity != nil {
		return *l.Capacity, true
	}
	if strings.EqualFold(l.Kind, KindDesk) {
		return 1, true
	}
	return 0, false
}

// DisplayName prefers the qualified path over the short name.
func (l *Location) DisplayName() string {
	if l.QualifiedName != "" {
		return l.QualifiedName
	}
	return l.Name
}

// Flatten walks a location tree pre-order and returns every node,
// parents before their children.
func Flatten(locations []Location) []Location {
	out := make([]Location, 0, len(locations))
	var walk func(nodes []Location)
	walk = func(nodes []Location) {
		for _, n := range nodes {
			out = append(out, n)
			if len(n.Locations) > 0 {
				walk(n.Locations)
			}
		}
	}
	walk(locations)
	return out
}

// IntPtr is a small helper for optional integer fields.
func IntPtr(v int) *int {
	return &v
}
