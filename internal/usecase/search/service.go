package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/nearserve/nearserve/internal/domain/geo"
	domsearch "github.com/nearserve/nearserve/internal/domain/search"
)

// Service runs proximity searches over the provider index.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search validates the request, queries the geo index and returns providers
// ordered by distance from the origin. Providers without a stored location
// sort after those with one. At most domsearch.MaxResults are returned.
func (s *Service) Search(ctx context.Context, req domsearch.Request) (*domsearch.Response, error) {
	q, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	providers, err := s.repo.GeoSearch(ctx, q.Service, q.Latitude, q.Longitude, q.RadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}

	results := make([]domsearch.Result, 0, len(providers))
	for i := range providers {
		r := domsearch.Result{Provider: providers[i]}
		if loc := providers[i].Location; loc != nil {
			d := geo.Round2(geo.Haversine(q.Latitude, q.Longitude, loc.Latitude, loc.Longitude))
			r.Distance = &d
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		di, dj := results[i].Distance, results[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	if len(results) > domsearch.MaxResults {
		results = results[:domsearch.MaxResults]
	}

	return &domsearch.Response{
		Providers: results,
		Meta: domsearch.Meta{
			TotalResults: len(results),
			SearchRadius: q.RadiusMiles(),
			SearchOrigin: domsearch.Origin{Latitude: q.Latitude, Longitude: q.Longitude},
			SearchTerm:   q.Service,
		},
	}, nil
}
