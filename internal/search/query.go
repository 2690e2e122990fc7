// internal/search/query.go
package search

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"booking-workers/internal/models"
)

const defaultQueryLimit = 10

var (
	nowPattern   = regexp.MustCompile(`\bnow\b`)
	hoursPattern = regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?)\b`)
)

// SearchByQuery runs a requirement search from free text. Facility terms and
// capacity are extracted from the text, "room"/"desk" pick the location
// kind, and "now", "today" or "tomorrow" set an availability window.
func (e *Engine) SearchByQuery(ctx context.Context, query string) (*models.LocationSearchResponse, error) {
	req := e.RequestFromQuery(query)
	return e.SearchLocationsByRequirements(ctx, req)
}

// RequestFromQuery builds the search request SearchByQuery would run.
func (e *Engine) RequestFromQuery(query string) models.LocationSearchRequest {
	lower := strings.ToLower(query)

	req := models.LocationSearchRequest{
		Query: query,
		Limit: defaultQueryLimit,
	}

	switch {
	case strings.Contains(lower, "room"):
		req.LocationKind = models.KindRoom
	case strings.Contains(lower, "desk"):
		req.LocationKind = models.KindDesk
	}

	hours := 0
	if m := hoursPattern.FindStringSubmatch(lower); m != nil {
		hours, _ = strconv.Atoi(m[1])
	}

	now := e.now()
	switch {
	case nowPattern.MatchString(lower) || strings.Contains(lower, "today"):
		duration := defaultAvailabilityWindow
		if hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
		from := now
		to := from.Add(duration)
		req.DateFrom, req.DateTo = &from, &to

	case strings.Contains(lower, "tomorrow"):
		day := now.AddDate(0, 0, 1)
		from := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, now.Location())
		to := time.Date(day.Year(), day.Month(), day.Day(), 17, 0, 0, 0, now.Location())
		if hours > 0 {
			to = from.Add(time.Duration(hours) * time.Hour)
		}
		req.DateFrom, req.DateTo = &from, &to
	}

	return req
}
