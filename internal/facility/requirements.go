// internal/facility/requirements.go
package facility

import (
	"regexp"
	"strconv"
	"strings"
)

type requirementTerm struct {
	term     string
	keywords []string
}

// requirementTerms maps query keywords to canonical requirement terms. The
// slice order is the order terms are reported in.
var requirementTerms = []requirementTerm{
	{"screen", []string{"screen", "monitor", "display"}},
	{"adjustable", []string{"adjustable", "standing", "sit-stand", "height"}},
	{"video", []string{"video", "conference", "zoom", "teams"}},
	{"board", []string{"whiteboard", "board"}},
	{"accessible", []string{"accessible", "wheelchair", "disabled"}},
	{"air", []string{"air con", "air-con", "aircon", "air conditioning", "climate"}},
	{"wifi", []string{"wifi", "wi-fi", "wireless", "internet"}},
	{"phone", []string{"phone", "telephone"}},
	{"power", []string{"power", "plug", "socket", "charging", "outlet"}},
	{"desk", []string{"desk"}},
	{"mechanical", []string{"mechanical"}},
	{"electric", []string{"electric"}},
	{"tv", []string{"tv", "television"}},
}

// ExtractRequirements returns the canonical facility terms mentioned in a
// free-text query, without duplicates.
func ExtractRequirements(query string) []string {
	lower := strings.ToLower(query)
	seen := make(map[string]bool)
	out := []string{}

	for _, rt := range requirementTerms {
		if seen[rt.term] {
			continue
		}
		if containsAny(lower, rt.keywords...) {
			out = append(out, rt.term)
			seen[rt.term] = true
		}
	}
	return out
}

var capacityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*people`),
	regexp.MustCompile(`(?i)(\d+)\s*person`),
	regexp.MustCompile(`(?i)for\s+(\d+)`),
	regexp.MustCompile(`(?i)capacity\s+(?:of\s+)?(\d+)`),
	regexp.MustCompile(`(?i)space\s+for\s+(\d+)`),
	regexp.MustCompile(`(?i)seats?\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+seats?`),
}

// durationSuffix catches "for 2 hours" style phrases, which are not head counts.
var durationSuffix = regexp.MustCompile(`(?i)^\s*(h|hr|hrs|hour|hours|min|mins|minute|minutes)\b`)

// ExtractCapacity returns the head count mentioned in a query, or nil.
func ExtractCapacity(query string) *int {
	for _, p := range capacityPatterns {
		for _, loc := range p.FindAllStringSubmatchIndex(query, -1) {
			if durationSuffix.MatchString(query[loc[1]:]) {
				continue
			}
			n, err := strconv.Atoi(query[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			return &n
		}
	}
	return nil
}
