package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/geo"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	t.Parallel()

	points := []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 6.2239, Lng: 7.1185},
		{Lat: -33.86, Lng: 151.21},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		require.Zero(t, geo.DistanceKm(p, p))
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	t.Parallel()

	a := domain.Coordinate{Lat: 6.2239, Lng: 7.1185}
	b := domain.Coordinate{Lat: 55.7558, Lng: 37.6173}

	require.InDelta(t, geo.DistanceKm(a, b), geo.DistanceKm(b, a), 1e-9)
}

func TestDistanceKm_OneDegreeLatitude(t *testing.T) {
	t.Parallel()

	// One degree of latitude is ~111.19 km anywhere on the sphere.
	a := domain.Coordinate{Lat: 10, Lng: 20}
	b := domain.Coordinate{Lat: 11, Lng: 20}

	require.InDelta(t, 111.19, geo.DistanceKm(a, b), 0.1)
}

func TestDistanceKm_ShortHop(t *testing.T) {
	t.Parallel()

	a := domain.Coordinate{Lat: 6.2239, Lng: 7.1185}
	b := domain.Coordinate{Lat: 6.2304, Lng: 7.1212}

	require.InDelta(t, 0.77, geo.DistanceKm(a, b), 0.02)
}

func TestDistanceKm_Antipodal(t *testing.T) {
	t.Parallel()

	a := domain.Coordinate{Lat: 0, Lng: 0}
	b := domain.Coordinate{Lat: 0, Lng: 180}

	// Half the Earth's circumference, no special-casing needed.
	require.InDelta(t, math.Pi*6371.0, geo.DistanceKm(a, b), 1.0)
}
