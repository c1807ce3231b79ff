package search

import (
	"context"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

type mockRepo struct {
	geoSearchFn func(ctx context.Context, serviceQuery string, lat, lon, radiusMeters float64) ([]domprov.Provider, error)
}

func (m *mockRepo) GeoSearch(ctx context.Context, serviceQuery string, lat, lon, radiusMeters float64) ([]domprov.Provider, error) {
	return m.geoSearchFn(ctx, serviceQuery, lat, lon, radiusMeters)
}
