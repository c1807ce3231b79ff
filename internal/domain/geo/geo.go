package geo

import "math"

// EarthRadiusMiles is the mean radius of Earth used for Haversine distance.
// Result distances are reported to clients in miles.
const EarthRadiusMiles = 3959.0

// MetersPerMile converts between the store's native radius unit (meters)
// and the API radius unit (miles).
const MetersPerMile = 1609.34

// Haversine returns the great-circle distance in miles between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// MilesToMeters converts miles to meters.
func MilesToMeters(mi float64) float64 { return mi * MetersPerMile }

// MetersToMiles converts meters to miles.
func MetersToMiles(m float64) float64 { return m / MetersPerMile }

// Round2 rounds to two decimal places, matching the API distance contract.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
