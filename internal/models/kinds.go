// internal/models/kinds.go
package models

import "strings"

// Location kinds returned by the booking API.
const (
	KindBuilding = "BUILDING"
	KindFloor    = "FLOOR"
	KindZone     = "ZONE"
	KindRoom     = "ROOM"
	KindDesk     = "DESK"
	KindDeskBank = "DESK_BANK"
)

type BookingCategory string

const (
	BookingCategoryRoom BookingCategory = "room"
	BookingCategoryDesk BookingCategory = "desk"
)

// BookingCategoryForKind maps a location kind to the upstream booking
// category. Unknown kinds are booked as desks.
func BookingCategoryForKind(kind string) BookingCategory {
	switch strings.ToUpper(kind) {
	case KindRoom:
		return BookingCategoryRoom
	case KindDesk, KindDeskBank:
		return BookingCategoryDesk
	default:
		return BookingCategoryDesk
	}
}
