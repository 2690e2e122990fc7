// internal/booking/provider.go
package booking

import (
	"context"

	"booking-workers/internal/models"
)

// HierarchyProvider reads the organisation's location tree.
type HierarchyProvider interface {
	GetLocationHierarchy(ctx context.Context, query models.HierarchyQuery) (*models.HierarchyResult, error)
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
}

// AvailabilityProvider answers whether a location is free in a window.
// An empty or false answer is not an error.
type AvailabilityProvider interface {
	CheckAvailability(ctx context.Context, query models.AvailabilityQuery) (*models.AvailabilityResult, error)
}

// Provider is the full booking API surface used by the tools.
type Provider interface {
	HierarchyProvider
	AvailabilityProvider
}
