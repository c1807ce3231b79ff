package search

import (
	"context"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

// Repository defines the storage contract for proximity search.
type Repository interface {
	// GeoSearch returns providers within radiusMeters of the origin whose
	// service field contains serviceQuery case-insensitively, in the store's
	// native ascending-distance order.
	GeoSearch(ctx context.Context, serviceQuery string, lat, lon, radiusMeters float64) ([]domprov.Provider, error)
}
