// internal/location/resolver.go
package location

import (
	"context"
	"regexp"
	"strings"

	"booking-workers/internal/booking"
	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/models"
)

// NumericIDThreshold is the smallest number treated as a direct location id.
// Smaller numbers are room numbers and go through search.
const NumericIDThreshold = 100000

// Resolver turns caller location references into location ids.
type Resolver struct {
	provider            booking.HierarchyProvider
	preferredLocationID int64
	logger              logger.Logger
}

// NewResolver creates a Resolver. A zero preferredLocationID skips the
// scoped lookup and searches the whole organisation straight away.
func NewResolver(provider booking.HierarchyProvider, preferredLocationID int64, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Resolver{
		provider:            provider,
		preferredLocationID: preferredLocationID,
		logger:              log.WithFields(map[string]interface{}{"component": "location-resolver"}),
	}
}

// ResolveLocationID resolves ref to a location id.
//
// Numeric references at or above NumericIDThreshold are looked up directly
// with a single upstream call. Everything else is a search term: the
// preferred location's subtree is searched first, then the whole
// organisation.
func (r *Resolver) ResolveLocationID(ctx context.Context, ref Reference) (int64, error) {
	loc, err := r.Resolve(ctx, ref)
	if err != nil {
		return 0, err
	}
	return loc.ID, nil
}

// Resolve is ResolveLocationID returning the matched location.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (*models.Location, error) {
	if ref.IsZero() {
		return nil, errors.NewInvalidInputError("location reference is empty")
	}

	if id, ok := ref.ID(); ok && id >= NumericIDThreshold {
		loc, err := r.provider.GetLocation(ctx, id)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, errors.NewLocationIDNotFoundError(id)
		}
		r.logger.Debug("Resolved direct location id", map[string]interface{}{"locationId": loc.ID})
		return loc, nil
	}

	return r.search(ctx, ref.Term())
}

func (r *Resolver) search(ctx context.Context, term string) (*models.Location, error) {
	if r.preferredLocationID != 0 {
		parent := r.preferredLocationID
		result, err := r.provider.GetLocationHierarchy(ctx, models.HierarchyQuery{
			ParentID:        &parent,
			IncludeChildren: true,
		})
		if err != nil {
			return nil, err
		}
		if loc := FindLocationInHierarchy(term, result.Locations); loc != nil {
			r.logger.Debug("Resolved location in preferred scope", map[string]interface{}{
				"term":       term,
				"locationId": loc.ID,
			})
			return loc, nil
		}
	}

	result, err := r.provider.GetLocationHierarchy(ctx, models.HierarchyQuery{IncludeChildren: true})
	if err != nil {
		return nil, err
	}
	if loc := FindLocationInHierarchy(term, result.Locations); loc != nil {
		r.logger.Debug("Resolved location in organization scope", map[string]interface{}{
			"term":       term,
			"locationId": loc.ID,
		})
		return loc, nil
	}

	r.logger.Info("Location not found", map[string]interface{}{"term": term})
	return nil, errors.NewLocationNotFoundError(term)
}

// FindLocationInHierarchy searches a location tree for term. The first
// exact name match in tree order wins, then the first name containing the
// term, then a name carrying the term's number. Only the number pass favours
// locations of the kind the term looks like (room number, desk id, desk bank).
func FindLocationInHierarchy(term string, locations []models.Location) *models.Location {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	all := models.Flatten(locations)

	for i := range all {
		if strings.EqualFold(all[i].Name, term) {
			return &all[i]
		}
	}

	lower := strings.ToLower(term)
	for i := range all {
		if strings.Contains(strings.ToLower(all[i].Name), lower) {
			return &all[i]
		}
	}

	number := extractNumber(term)
	if number == "" {
		return nil
	}
	return matchNumber(number, byKind(all, Classify(term).Kind.LocationKind()))
}

var (
	trailingNumber = regexp.MustCompile(`(\d+)\s*$`)
	anyNumber      = regexp.MustCompile(`\d+`)
)

// byKind moves locations of kind to the front, keeping tree order otherwise.
func byKind(candidates []models.Location, kind string) []models.Location {
	if kind == "" {
		return candidates
	}
	ordered := make([]models.Location, 0, len(candidates))
	for _, l := range candidates {
		if strings.EqualFold(l.Kind, kind) {
			ordered = append(ordered, l)
		}
	}
	for _, l := range candidates {
		if !strings.EqualFold(l.Kind, kind) {
			ordered = append(ordered, l)
		}
	}
	return ordered
}

func matchNumber(number string, candidates []models.Location) *models.Location {
	for i := range candidates {
		for _, n := range anyNumber.FindAllString(candidates[i].Name, -1) {
			if trimZeros(n) == number {
				return &candidates[i]
			}
		}
	}
	return nil
}

// extractNumber prefers a trailing number ("Room 701") and falls back to the
// first standalone one ("701 east").
func extractNumber(term string) string {
	if m := trailingNumber.FindStringSubmatch(term); m != nil {
		return trimZeros(m[1])
	}
	if m := anyNumber.FindString(term); m != "" {
		return trimZeros(m)
	}
	return ""
}

func trimZeros(n string) string {
	t := strings.TrimLeft(n, "0")
	if t == "" {
		return "0"
	}
	return t
}
