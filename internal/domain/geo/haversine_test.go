package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name     string
		p1       orb.Point
		p2       orb.Point
		expected float64
		delta    float64
	}{
		{name: "one degree of longitude on the equator", p1: orb.Point{0, 0}, p2: orb.Point{1, 0}, expected: 111.195, delta: 0.001},
		{name: "one degree of latitude", p1: orb.Point{0, 0}, p2: orb.Point{0, 1}, expected: 111.195, delta: 0.001},
		{name: "ten degrees of latitude", p1: orb.Point{0, 0}, p2: orb.Point{0, 10}, expected: 1111.95, delta: 0.01},
		{name: "pole to pole", p1: orb.Point{0, 90}, p2: orb.Point{0, -90}, expected: math.Pi * EarthRadiusKm, delta: 1e-6},
		{name: "across the antimeridian", p1: orb.Point{179.5, 0}, p2: orb.Point{-179.5, 0}, expected: 111.195, delta: 0.001},
		{name: "Taipei 101 to Taipei Main Station", p1: orb.Point{121.5654, 25.0330}, p2: orb.Point{121.5170, 25.0478}, expected: 5.13, delta: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HaversineKm(tt.p1, tt.p2), tt.delta)
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	points := []orb.Point{
		{0, 0},
		{121.5654, 25.0330},
		{-122.0312, 37.3318},
		{151.2093, -33.8688},
		{-0.1278, 51.5074},
	}

	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, HaversineKm(a, b), HaversineKm(b, a), "distance(%v, %v) must be symmetric", a, b)
		}
	}
}

func TestHaversineKm_SamePointIsZero(t *testing.T) {
	for _, p := range []orb.Point{{0, 0}, {121.5654, 25.0330}, {-180, -90}, {180, 90}} {
		assert.Zero(t, HaversineKm(p, p))
	}
}

func TestWithinRadius_BoundaryIsInclusive(t *testing.T) {
	center := orb.Point{0, 0}
	target := orb.Point{0, 10.0 / 111.195}

	exact := HaversineKm(center, target)

	distance, ok := WithinRadius(center, target, exact)
	assert.True(t, ok)
	assert.Equal(t, exact, distance)

	_, ok = WithinRadius(center, target, math.Nextafter(exact, 0))
	assert.False(t, ok)
}

func TestWithinRadius_ZeroRadiusMatchesOnlyTheCenter(t *testing.T) {
	center := orb.Point{121.5654, 25.0330}

	_, ok := WithinRadius(center, center, 0)
	assert.True(t, ok)

	_, ok = WithinRadius(center, orb.Point{121.5655, 25.0330}, 0)
	assert.False(t, ok)
}
