// Package geo holds the great-circle distance math used by radius search.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
// orb/geo uses the equatorial radius, which is why this package does its own math.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given as orb.Point{longitude, latitude} in degrees.
func HaversineKm(p1, p2 orb.Point) float64 {
	lat1Rad := p1.Lat() * math.Pi / 180
	lng1Rad := p1.Lon() * math.Pi / 180
	lat2Rad := p2.Lat() * math.Pi / 180
	lng2Rad := p2.Lon() * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// WithinRadius reports the distance from center to p and whether it is
// within radiusKm. The boundary is inclusive.
func WithinRadius(center, p orb.Point, radiusKm float64) (float64, bool) {
	distanceKm := HaversineKm(center, p)

	return distanceKm, distanceKm <= radiusKm
}
