package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestHaversine_SamePoint(t *testing.T) {
	d := Haversine(40.7128, -74.0060, 40.7128, -74.0060)
	if d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{40.7128, -74.0060, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 0, -45, 90},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9*ab {
			t.Fatalf("asymmetric: %.12f vs %.12f", ab, ba)
		}
	}
}

func TestHaversine_NewYork_London(t *testing.T) {
	// NYC to London: ~3,461 miles
	d := Haversine(40.7128, -74.0060, 51.5074, -0.1278)
	expected := 3461.0
	if !almost(d, expected, 20) { // spherical approx
		t.Fatalf("want ~%.0fmi, got %.2fmi", expected, d)
	}
}

func TestHaversine_Antipodal(t *testing.T) {
	// Opposite sides of Earth: half circumference
	d := Haversine(0, 0, 0, 180)
	expected := math.Pi * EarthRadiusMiles
	if !almost(d, expected, 0.01) {
		t.Fatalf("want ~%.2fmi, got %.2fmi", expected, d)
	}
}

func TestHaversine_Manhattan(t *testing.T) {
	// Lower Manhattan to East Williamsburg, ~3.9 miles
	d := Haversine(40.7128, -74.0060, 40.730, -73.935)
	if !almost(d, 3.90, 0.05) {
		t.Fatalf("want ~3.90mi, got %.4fmi", d)
	}
}

func TestUnitConversion_RoundTrip(t *testing.T) {
	for _, mi := range []float64{0, 1, 10, 50} {
		got := MetersToMiles(MilesToMeters(mi))
		if math.Abs(got-mi) > 1e-9 {
			t.Fatalf("round trip %f -> %f", mi, got)
		}
	}
	if MilesToMeters(1) != 1609.34 {
		t.Fatalf("want 1609.34, got %f", MilesToMeters(1))
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{6.21371, 6.21},
		{6.215, 6.22},
		{0, 0},
		{49.999, 50},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{95, 0, false},
		{-91, 0, false},
		{0, 181, false},
		{0, -180.5, false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ValidateCoordinates(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}
