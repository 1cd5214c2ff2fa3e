package usecase

import (
	"context"

	"addrbook/internal/domain/entity"
)

// SearchInput describes a radius query around a center point.
type SearchInput struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance"`
}

// AddressMatch is an address found by a radius query together with its
// great-circle distance from the query center.
type AddressMatch struct {
	*entity.Address
	DistanceKm float64 `json:"distance_km"`
}

// SearchUsecase defines the interface for proximity search use cases
type SearchUsecase interface {
	// SearchWithinRadius returns every address whose distance from the center
	// is less than or equal to input.DistanceKm, in ID order.
	SearchWithinRadius(ctx context.Context, input *SearchInput) ([]*AddressMatch, error)
}
