package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FormatDistance renders a distance the way the app displays it: meters under
// 1 km, one decimal under 10 km, whole kilometers beyond.
func FormatDistance(distanceKm float64) string {
	switch {
	case distanceKm < 1:
		return fmt.Sprintf("%dm away", int(math.Round(distanceKm*1000)))
	case distanceKm < 10:
		return fmt.Sprintf("%.1f km away", distanceKm)
	default:
		return fmt.Sprintf("%d km away", int(math.Round(distanceKm)))
	}
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
