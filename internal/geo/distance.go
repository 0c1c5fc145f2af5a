// Package geo computes great-circle distances between coordinates.
package geo

import (
	"math"

	"quickbite-orders/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance in kilometres between two
// coordinates. Pure and total for any finite, in-range input.
func DistanceKm(a, b domain.Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLng*sinLng

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
