package search

import "github.com/nearserve/nearserve/internal/domain/provider"

// DistanceUnit is the unit every annotated distance is reported in.
const DistanceUnit = "miles"

// Result is a single provider hit. Distance is nil when the stored record
// carries no resolvable location; such hits are passed through rather than
// dropped.
type Result struct {
	Provider provider.Provider
	Distance *float64
}

// Origin echoes the search origin back to the caller.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// Meta describes the executed search.
type Meta struct {
	TotalResults int
	SearchRadius float64 // miles, rounded to 2 decimals
	SearchOrigin Origin
	SearchTerm   string
}

// Response is the full proximity-search output.
type Response struct {
	Providers []Result
	Meta      Meta
}
