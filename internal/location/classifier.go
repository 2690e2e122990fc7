// internal/location/classifier.go
package location

import (
	"regexp"
	"strings"

	"booking-workers/internal/models"
)

// IdentifierKind is the shape of a free-form location reference.
type IdentifierKind int

const (
	FreeText IdentifierKind = iota
	RoomNumber
	DeskID
	DeskBankNumber
)

func (k IdentifierKind) String() string {
	switch k {
	case RoomNumber:
		return "room_number"
	case DeskID:
		return "desk_id"
	case DeskBankNumber:
		return "desk_bank_number"
	default:
		return "free_text"
	}
}

// LocationKind is the location kind a reference most likely points at, or
// "" when the reference gives no hint.
func (k IdentifierKind) LocationKind() string {
	switch k {
	case RoomNumber:
		return models.KindRoom
	case DeskID:
		return models.KindDesk
	case DeskBankNumber:
		return models.KindDeskBank
	default:
		return ""
	}
}

// Identifier is a classified location reference.
type Identifier struct {
	Kind   IdentifierKind
	Number string
	Raw    string
}

var (
	deskBankPattern = regexp.MustCompile(`(?i)^(?:desk\s*bank|bank)[\s\-#]*(\d+)$`)
	deskPattern     = regexp.MustCompile(`(?i)^(?:desk|d)[\s\-#]*(\d+[a-z]?)$`)
	roomPattern     = regexp.MustCompile(`(?i)^(?:room|rm|r)?[\s\-#]*(\d{2,5}[a-z]?)$`)
)

// Classify tags a reference as a room number, desk id, desk bank number or
// free text. Patterns are checked most specific first.
func Classify(term string) Identifier {
	raw := strings.TrimSpace(term)
	id := Identifier{Kind: FreeText, Raw: raw}

	switch {
	case deskBankPattern.MatchString(raw):
		id.Kind = DeskBankNumber
		id.Number = deskBankPattern.FindStringSubmatch(raw)[1]
	case deskPattern.MatchString(raw):
		id.Kind = DeskID
		id.Number = deskPattern.FindStringSubmatch(raw)[1]
	case roomPattern.MatchString(raw):
		id.Kind = RoomNumber
		id.Number = roomPattern.FindStringSubmatch(raw)[1]
	}
	return id
}
