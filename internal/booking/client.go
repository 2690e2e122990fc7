// internal/booking/client.go
package booking

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"booking-workers/internal/common/errors"
	httpclient "booking-workers/internal/common/http"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/models"
)

// API is the subset of the HTTP client the booking provider needs.
type API interface {
	GetJSON(ctx context.Context, operation, path string, query url.Values, out interface{}) error
	GetJSONNoCache(ctx context.Context, operation, path string, query url.Values, out interface{}) error
}

// Client implements Provider over the booking HTTP API.
type Client struct {
	api            API
	organizationID int64
	logger         logger.Logger
}

var _ Provider = (*Client)(nil)

func NewClient(api API, organizationID int64, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		api:            api,
		organizationID: organizationID,
		logger:         log.WithFields(map[string]interface{}{"component": "booking-provider"}),
	}
}

// GetLocation fetches one location with its facilities and children.
func (c *Client) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	var raw apiLocation
	err := c.api.GetJSON(ctx, "getLocation", "/location/"+strconv.FormatInt(id, 10),
		url.Values{"include": {"facilities,children"}}, &raw)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return nil, errors.NewLocationIDNotFoundError(id)
		}
		return nil, err
	}

	loc := raw.toModel(0, false)
	return &loc, nil
}

// GetLocationHierarchy fetches locations as a tree. A LocationID query
// returns that location's subtree; otherwise the organisation's locations
// are listed, optionally under ParentID.
func (c *Client) GetLocationHierarchy(ctx context.Context, q models.HierarchyQuery) (*models.HierarchyResult, error) {
	include := includeParam(q)

	if q.LocationID != nil {
		var raw apiLocation
		query := url.Values{}
		if include != "" {
			query.Set("include", include)
		}
		err := c.api.GetJSON(ctx, "getLocationHierarchy", "/location/"+strconv.FormatInt(*q.LocationID, 10), query, &raw)
		if err != nil {
			if httpclient.IsStatus(err, http.StatusNotFound) {
				return nil, errors.NewLocationIDNotFoundError(*q.LocationID)
			}
			return nil, err
		}
		root := raw.toModel(0, q.IsBookable)
		return &models.HierarchyResult{
			Locations: []models.Location{root},
			Total:     1,
			Hierarchy: &root,
		}, nil
	}

	query := url.Values{}
	if q.ParentID != nil {
		query.Set("l", strconv.FormatInt(*q.ParentID, 10))
	}
	if q.Kind != "" {
		query.Set("kind", strings.ToUpper(q.Kind))
	}
	if include != "" {
		query.Set("include", include)
	}
	if q.IsBookable {
		query.Set("bookable", "true")
	}

	var raw apiLocationList
	path := "/org/" + strconv.FormatInt(c.organizationID, 10) + "/locations"
	if err := c.api.GetJSON(ctx, "getLocationHierarchy", path, query, &raw); err != nil {
		return nil, err
	}

	var parentID int64
	if q.ParentID != nil {
		parentID = *q.ParentID
	}
	locations := make([]models.Location, 0, len(raw.Locations))
	for _, l := range raw.Locations {
		locations = append(locations, l.toModel(parentID, q.IsBookable))
	}

	total := len(locations)
	if raw.Total != nil {
		total = *raw.Total
	}

	c.logger.Debug("Fetched location hierarchy", map[string]interface{}{
		"parentId":  parentID,
		"locations": len(locations),
	})

	return &models.HierarchyResult{Locations: locations, Total: total}, nil
}

func includeParam(q models.HierarchyQuery) string {
	var parts []string
	if q.IncludeChildren {
		parts = append(parts, "children")
	}
	if q.IncludeFacilities {
		parts = append(parts, "facilities")
	}
	return strings.Join(parts, ",")
}

// CheckAvailability asks whether a location is free between DateFrom and
// DateTo. Availability is never served from cache.
func (c *Client) CheckAvailability(ctx context.Context, q models.AvailabilityQuery) (*models.AvailabilityResult, error) {
	category := q.BookingCategory
	if category == "" {
		category = models.BookingCategoryDesk
	}

	query := url.Values{
		"l":  {strconv.FormatInt(q.LocationID, 10)},
		"f":  {q.DateFrom.UTC().Format(time.RFC3339)},
		"t":  {q.DateTo.UTC().Format(time.RFC3339)},
		"bc": {string(category)},
	}

	var raw apiAvailability
	if err := c.api.GetJSONNoCache(ctx, "checkAvailability", "/availability", query, &raw); err != nil {
		return nil, err
	}

	available, slots, err := decodeAvailable(raw.Available)
	if err != nil {
		return nil, errors.NewUpstreamRequestFailedError("checkAvailability", err)
	}

	return &models.AvailabilityResult{
		LocationID: q.LocationID,
		Available:  available,
		Slots:      slots,
	}, nil
}
