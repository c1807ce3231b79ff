// Package search holds the proximity-search request and result contracts.
package search

import (
	"strings"

	"github.com/nearserve/nearserve/internal/domain"
	"github.com/nearserve/nearserve/internal/domain/geo"
)

const (
	// DefaultRadiusMeters applies when the request carries no radius (~6.2 miles).
	DefaultRadiusMeters = 10000.0
	// MaxRadiusMeters is the hard radius cap (50 miles). Requests above it
	// are rejected, not clamped.
	MaxRadiusMeters = 80467.0
	// MaxResults caps the provider list in a single response.
	MaxResults = 50
)

// Request is the raw, transport-decoupled search input. Latitude and
// Longitude are pointers so that absent and zero coordinates are
// distinguishable.
type Request struct {
	Service     string
	Latitude    *float64
	Longitude   *float64
	RadiusMiles *float64
}

// Query is a normalized, validated search input. Radius is in meters, the
// store's native unit.
type Query struct {
	Service      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// RadiusMiles converts the effective radius back to the response unit,
// rounded to two decimals.
func (q Query) RadiusMiles() float64 {
	return geo.Round2(geo.MetersToMiles(q.RadiusMeters))
}

// Normalize validates the request and produces a Query. Validation failures
// are sentinel errors; no store access happens before this passes.
func (r *Request) Normalize() (Query, error) {
	if r.Latitude == nil || r.Longitude == nil {
		return Query{}, domain.ErrMissingCoordinates
	}

	service := strings.TrimSpace(r.Service)
	if service == "" {
		return Query{}, domain.ErrMissingService
	}

	if !geo.ValidateCoordinates(*r.Latitude, *r.Longitude) {
		return Query{}, domain.ErrInvalidCoordinates
	}

	radius := DefaultRadiusMeters
	if r.RadiusMiles != nil {
		radius = geo.MilesToMeters(*r.RadiusMiles)
	}
	if radius <= 0 {
		return Query{}, domain.NewValidationError("radius", "must be positive")
	}
	if radius > MaxRadiusMeters {
		return Query{}, domain.ErrRadiusTooLarge
	}

	return Query{
		Service:      service,
		Latitude:     *r.Latitude,
		Longitude:    *r.Longitude,
		RadiusMeters: radius,
	}, nil
}
