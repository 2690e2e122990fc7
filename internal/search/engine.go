// internal/search/engine.go
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"booking-workers/internal/booking"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/metrics"
	"booking-workers/internal/facility"
	"booking-workers/internal/models"

	"github.com/sourcegraph/conc/pool"
)

const (
	defaultAvailabilityWindow = time.Hour
	defaultFacilityLimit      = 10

	exactCapacityBoost = 1.2
	unavailablePenalty = 0.5
)

// Engine searches the location hierarchy by facilities, capacity, kind and
// availability.
type Engine struct {
	hierarchy    booking.HierarchyProvider
	availability booking.AvailabilityProvider
	logger       logger.Logger

	maxConcurrentChecks int
	now                 func() time.Time
}

type Option func(*Engine)

// WithMaxConcurrentChecks bounds concurrent availability calls. One runs
// them sequentially.
func WithMaxConcurrentChecks(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrentChecks = n
		}
	}
}

// WithClock replaces time.Now for resolving relative dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(hierarchy booking.HierarchyProvider, availability booking.AvailabilityProvider, log logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	e := &Engine{
		hierarchy:           hierarchy,
		availability:        availability,
		logger:              log.WithFields(map[string]interface{}{"component": "search-engine"}),
		maxConcurrentChecks: 1,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SearchLocationsByRequirements finds bookable locations for req.
//
// Requirements passed explicitly are hard filters: a candidate lacking
// facilities or failing them is dropped. Requirements extracted from
// req.Query only scale the score. A hierarchy fetch failure aborts the
// search; a failed availability check only annotates its candidate.
func (e *Engine) SearchLocationsByRequirements(ctx context.Context, req models.LocationSearchRequest) (*models.LocationSearchResponse, error) {
	start := time.Now()

	explicit := normalizeTerms(req.Requirements)
	var extracted []string
	capacity := req.Capacity
	if req.Query != "" {
		extracted = facility.ExtractRequirements(req.Query)
		if capacity == nil {
			capacity = facility.ExtractCapacity(req.Query)
		}
	}
	combined := mergeTerms(explicit, extracted)
	if capacity != nil && *capacity <= 0 {
		capacity = nil
	}
	kind := strings.ToUpper(strings.TrimSpace(req.LocationKind))

	result, err := e.hierarchy.GetLocationHierarchy(ctx, models.HierarchyQuery{
		ParentID:          req.ParentLocationID,
		IncludeChildren:   true,
		IncludeFacilities: true,
		IsBookable:        true,
	})
	if err != nil {
		return nil, err
	}

	all := models.Flatten(result.Locations)
	metrics.SearchCandidatesScanned.WithLabelValues("requirements").Observe(float64(len(all)))

	results := make([]models.LocationSearchResult, 0)
	for _, loc := range all {
		if !loc.IsBookable {
			continue
		}
		if kind != "" && strings.ToUpper(loc.Kind) != kind {
			continue
		}
		if capacity != nil && !fitsCapacity(loc, *capacity) {
			continue
		}

		if len(explicit) > 0 {
			if len(loc.Facilities) == 0 {
				continue
			}
			if !facility.MatchAggregated(loc.Facilities, explicit).Matches {
				continue
			}
		}

		score := 1.0
		details := []string{}
		if len(combined) > 0 {
			match := facility.MatchAggregated(loc.Facilities, combined)
			score *= match.Score
			details = append(details, match.Details...)
		}

		if capacity != nil {
			effective, known := loc.EffectiveCapacity()
			switch {
			case known && effective == *capacity:
				score *= exactCapacityBoost
				details = append(details, fmt.Sprintf("✓ Exact capacity match (%d)", effective))
			case known:
				details = append(details, fmt.Sprintf("✓ Capacity %d (%d requested)", effective, *capacity))
			default:
				details = append(details, fmt.Sprintf("? Capacity unknown (%d requested)", *capacity))
			}
		}

		results = append(results, models.LocationSearchResult{
			Location:     loc,
			Score:        score,
			MatchDetails: details,
			FacilityInfo: facility.Info(loc.Facilities),
		})
	}

	sortByScore(results)
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	checks := 0
	var window *timeWindow
	if req.DateFrom != nil {
		window = newWindow(*req.DateFrom, req.DateTo)
		if window == nil {
			e.logger.Warn("Ignoring availability window that ends before it starts", map[string]interface{}{
				"dateFrom": req.DateFrom,
				"dateTo":   req.DateTo,
			})
		}
	}
	if window != nil && len(results) > 0 {
		checks = e.checkAvailability(ctx, results, *window)
		sortByScore(results)
	}

	filters := filterLabels(req.ParentLocationID, kind, capacity, combined, window)
	response := &models.LocationSearchResponse{
		Results:      results,
		TotalMatches: len(results),
		Metadata: models.SearchMetadata{
			SearchTimeMs:          time.Since(start).Milliseconds(),
			TotalLocationsScanned: len(all),
			AvailabilityChecks:    checks,
			FiltersApplied:        filters,
		},
	}
	if len(results) == 0 {
		response.Suggestions = suggestions(len(explicit) > 0, capacity != nil, kind != "", req.ParentLocationID != nil, window != nil)
	}

	e.logger.Info("Location search completed", map[string]interface{}{
		"scanned":            len(all),
		"matches":            len(results),
		"availabilityChecks": checks,
		"filters":            filters,
		"durationMs":         response.Metadata.SearchTimeMs,
	})
	return response, nil
}

// FindLocationsWithFacilities ranks bookable locations by how many of terms
// their facilities cover. Locations covering none are left out.
func (e *Engine) FindLocationsWithFacilities(ctx context.Context, terms []string, opts models.FacilitySearchOptions) (*models.LocationSearchResponse, error) {
	start := time.Now()
	terms = normalizeTerms(terms)
	kind := strings.ToUpper(strings.TrimSpace(opts.LocationKind))

	result, err := e.hierarchy.GetLocationHierarchy(ctx, models.HierarchyQuery{
		ParentID:          opts.ParentLocationID,
		IncludeChildren:   true,
		IncludeFacilities: true,
		IsBookable:        true,
	})
	if err != nil {
		return nil, err
	}

	all := models.Flatten(result.Locations)
	metrics.SearchCandidatesScanned.WithLabelValues("facilities").Observe(float64(len(all)))

	results := make([]models.LocationSearchResult, 0)
	for _, loc := range all {
		if !loc.IsBookable {
			continue
		}
		if kind != "" && strings.ToUpper(loc.Kind) != kind {
			continue
		}

		match := facility.MatchSimple(loc.Facilities, terms)
		if match.Score <= 0 {
			continue
		}
		results = append(results, models.LocationSearchResult{
			Location:     loc,
			Score:        match.Score,
			MatchDetails: match.Details,
			FacilityInfo: facility.Info(loc.Facilities),
		})
	}

	sortByScore(results)
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultFacilityLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	filters := filterLabels(opts.ParentLocationID, kind, nil, terms, nil)
	response := &models.LocationSearchResponse{
		Results:      results,
		TotalMatches: len(results),
		Metadata: models.SearchMetadata{
			SearchTimeMs:          time.Since(start).Milliseconds(),
			TotalLocationsScanned: len(all),
			FiltersApplied:        filters,
		},
	}
	if len(results) == 0 {
		response.Suggestions = suggestions(len(terms) > 0, false, kind != "", opts.ParentLocationID != nil, false)
	}
	return response, nil
}

// fitsCapacity applies the per-kind capacity rule: rooms need a known
// capacity of at least n, desks seat one, anything else passes unless its
// known capacity is too small.
func fitsCapacity(loc models.Location, n int) bool {
	switch strings.ToUpper(loc.Kind) {
	case models.KindRoom:
		return loc.Capacity != nil && *loc.Capacity >= n
	case models.KindDesk:
		return n <= 1
	default:
		return loc.Capacity == nil || *loc.Capacity >= n
	}
}

type timeWindow struct {
	from, to time.Time
}

func newWindow(from time.Time, to *time.Time) *timeWindow {
	end := from.Add(defaultAvailabilityWindow)
	if to != nil {
		end = *to
	}
	if !end.After(from) {
		return nil
	}
	return &timeWindow{from: from, to: end}
}

// checkAvailability annotates results in place and returns the number of
// checks performed.
func (e *Engine) checkAvailability(ctx context.Context, results []models.LocationSearchResult, w timeWindow) int {
	p := pool.New().WithMaxGoroutines(e.maxConcurrentChecks)
	for i := range results {
		r := &results[i]
		p.Go(func() {
			e.annotateAvailability(ctx, r, w)
		})
	}
	p.Wait()
	return len(results)
}

func (e *Engine) annotateAvailability(ctx context.Context, r *models.LocationSearchResult, w timeWindow) {
	res, err := e.availability.CheckAvailability(ctx, models.AvailabilityQuery{
		LocationID:      r.Location.ID,
		DateFrom:        w.from,
		DateTo:          w.to,
		BookingCategory: models.BookingCategoryForKind(r.Location.Kind),
	})
	if err != nil {
		metrics.AvailabilityChecks.WithLabelValues("error").Inc()
		e.logger.Warn("Availability check failed", map[string]interface{}{
			"locationId": r.Location.ID,
			"error":      err.Error(),
		})
		r.Availability = &models.AvailabilityInfo{Checked: false, Error: err.Error()}
		r.MatchDetails = append(r.MatchDetails, "⚠ Could not check availability")
		return
	}

	r.Availability = &models.AvailabilityInfo{
		Checked:   true,
		Available: res.Available,
		Slots:     res.Slots,
	}
	if res.Available {
		metrics.AvailabilityChecks.WithLabelValues("available").Inc()
		r.MatchDetails = append(r.MatchDetails, "✓ Available for the requested time")
		return
	}
	metrics.AvailabilityChecks.WithLabelValues("unavailable").Inc()
	r.Score *= unavailablePenalty
	r.MatchDetails = append(r.MatchDetails, "✗ Not available for the requested time")
}

func sortByScore(results []models.LocationSearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// mergeTerms appends extracted terms not already present in explicit.
func mergeTerms(explicit, extracted []string) []string {
	seen := make(map[string]bool, len(explicit)+len(extracted))
	out := make([]string, 0, len(explicit)+len(extracted))
	for _, group := range [][]string{explicit, extracted} {
		for _, t := range group {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, t)
		}
	}
	return out
}

func filterLabels(parentID *int64, kind string, capacity *int, requirements []string, window *timeWindow) []string {
	labels := []string{"bookable"}
	if parentID != nil {
		labels = append(labels, fmt.Sprintf("parentLocationId=%d", *parentID))
	}
	if kind != "" {
		labels = append(labels, "locationKind="+kind)
	}
	if capacity != nil {
		labels = append(labels, fmt.Sprintf("capacity>=%d", *capacity))
	}
	if len(requirements) > 0 {
		labels = append(labels, "requirements="+strings.Join(requirements, ","))
	}
	if window != nil {
		labels = append(labels, fmt.Sprintf("availability=%s/%s",
			window.from.Format(time.RFC3339), window.to.Format(time.RFC3339)))
	}
	return labels
}

func suggestions(requirements, capacity, kind, scoped, window bool) []string {
	var out []string
	if requirements {
		out = append(out, "Try fewer or more general facility requirements")
	}
	if capacity {
		out = append(out, "Try a smaller capacity")
	}
	if kind {
		out = append(out, "Try searching without a location kind")
	}
	if scoped {
		out = append(out, "Try searching the whole organization instead of one parent location")
	}
	if window {
		out = append(out, "Try a different time window")
	}
	if len(out) == 0 {
		out = append(out, "No bookable locations were returned; check the location id or browse the hierarchy")
	}
	return out
}
