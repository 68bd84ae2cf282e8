package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_IdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{48.8606, 2.3376},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	d1 := DistanceKm(48.8606, 2.3376, 45.7605, 4.8557)
	d2 := DistanceKm(45.7605, 4.8557, 48.8606, 2.3376)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Paris -> Lyon, roughly 392 km
	d := DistanceKm(48.8606, 2.3376, 45.7605, 4.8557)
	assert.InDelta(t, 392, d, 5)
}

// latOffset returns the latitude delta in degrees corresponding to a
// northward displacement of the given number of meters.
func latOffset(meters float64) float64 {
	return (meters / 1000 / 6371) * (180 / math.Pi)
}

func TestIsWithinGeofence_BoundaryInclusive(t *testing.T) {
	siteLat, siteLon := 48.8606, 2.3376

	// exactly 100.0m north of the site center
	assert.True(t, IsWithinGeofence(siteLat+latOffset(100.0), siteLon, siteLat, siteLon, 100))

	// 100.1m north is outside a 100m radius
	assert.False(t, IsWithinGeofence(siteLat+latOffset(100.1), siteLon, siteLat, siteLon, 100))
}

func TestIsWithinGeofence_CenterAlwaysInside(t *testing.T) {
	assert.True(t, IsWithinGeofence(45.7605, 4.8557, 45.7605, 4.8557, 1))
}
