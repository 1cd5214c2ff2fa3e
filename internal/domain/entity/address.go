// Package entity contains the core business objects of the project.
package entity

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Column widths of the addresses table.
const (
	MaxStreetLength = 100
	MaxRegionLength = 50
)

// Geographic bounds for coordinates, in degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Address is the core entity for a physical location.
type Address struct {
	ID        int64   `json:"id"`        // Assigned by the store on creation, immutable afterwards.
	Street    string  `json:"street"`    // Street line, e.g. "1600 Amphitheatre Pkwy".
	City      string  `json:"city"`      // City or locality.
	State     string  `json:"state"`     // State, province or region.
	Country   string  `json:"country"`   // Country name or code.
	Latitude  float64 `json:"latitude"`  // The geographic latitude.
	Longitude float64 `json:"longitude"` // The geographic longitude.
}

// Point returns the address location as an orb.Point (longitude first).
func (a *Address) Point() orb.Point {
	return orb.Point{a.Longitude, a.Latitude}
}

// Validate checks the text and coordinate constraints of the address.
func (a *Address) Validate() error {
	textFields := []struct {
		name   string
		value  string
		maxLen int
	}{
		{name: "street", value: a.Street, maxLen: MaxStreetLength},
		{name: "city", value: a.City, maxLen: MaxRegionLength},
		{name: "state", value: a.State, maxLen: MaxRegionLength},
		{name: "country", value: a.Country, maxLen: MaxRegionLength},
	}

	for _, field := range textFields {
		if strings.TrimSpace(field.value) == "" {
			return errors.Errorf("%s must not be empty", field.name)
		}
		if len([]rune(field.value)) > field.maxLen {
			return errors.Errorf("%s must be at most %d characters", field.name, field.maxLen)
		}
	}

	return ValidateCoordinate(a.Latitude, a.Longitude)
}

// ValidateCoordinate checks that latitude and longitude are within geographic bounds.
func ValidateCoordinate(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errors.Errorf("latitude %v out of range [%v, %v]", latitude, MinLatitude, MaxLatitude)
	}
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errors.Errorf("longitude %v out of range [%v, %v]", longitude, MinLongitude, MaxLongitude)
	}

	return nil
}
