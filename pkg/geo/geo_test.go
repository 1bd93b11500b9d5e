package geo

import (
	"math"
	"testing"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Mumbai to Delhi, roughly 1150 km.
	got := HaversineKm(19.0760, 72.8777, 28.7041, 77.1025)
	if got < 1130 || got > 1170 {
		t.Fatalf("expected Mumbai-Delhi distance near 1150 km, got %.2f", got)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{19.0760, 72.8777, 19.1197, 72.8464},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0, 180},
	}
	for _, p := range pairs {
		forward := HaversineKm(p[0], p[1], p[2], p[3])
		backward := HaversineKm(p[2], p[3], p[0], p[1])
		if math.Abs(forward-backward) > 1e-9 {
			t.Fatalf("expected symmetric distance, got %.12f vs %.12f", forward, backward)
		}
	}
}

func TestHaversineZeroForIdenticalPoints(t *testing.T) {
	if got := HaversineKm(19.0760, 72.8777, 19.0760, 72.8777); got != 0 {
		t.Fatalf("expected 0 for identical points, got %.12f", got)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		km   float64
		want string
	}{
		{0.23, "230m away"},
		{2.3, "2.3 km away"},
		{23.4, "23 km away"},
	}
	for _, tc := range cases {
		if got := FormatDistance(tc.km); got != tc.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tc.km, got, tc.want)
		}
	}
}
