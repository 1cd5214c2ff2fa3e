package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"addrbook/config"
	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/geo"
	"addrbook/internal/domain/repository"
	"addrbook/internal/usecase"

	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

// searchService implements the SearchUsecase interface with a linear scan over all addresses.
type searchService struct {
	addressRepo   repository.AddressRepository
	maxDistanceKm float64
	logger        *slog.Logger
}

// SearchServiceParams holds dependencies for SearchService, injected by Fx.
type SearchServiceParams struct {
	fx.In

	AddressRepo repository.AddressRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	maxDistanceKm := 0.0
	if params.Config != nil && params.Config.Search != nil {
		maxDistanceKm = params.Config.Search.MaxDistanceKm
	}

	return &searchService{
		addressRepo:   params.AddressRepo,
		maxDistanceKm: maxDistanceKm,
		logger:        params.Logger,
	}
}

// SearchWithinRadius returns all addresses within input.DistanceKm of the center, boundary included.
func (s *searchService) SearchWithinRadius(ctx context.Context, input *usecase.SearchInput) ([]*usecase.AddressMatch, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "failed to list addresses for search")
	}

	center := orb.Point{input.Longitude, input.Latitude}
	matches := make([]*usecase.AddressMatch, 0)
	for _, address := range addresses {
		distance, ok := geo.WithinRadius(center, address.Point(), input.DistanceKm)
		if !ok {
			continue
		}
		matches = append(matches, &usecase.AddressMatch{
			Address:    address,
			DistanceKm: distance,
		})
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Debug("Radius search completed",
		slog.Float64("latitude", input.Latitude),
		slog.Float64("longitude", input.Longitude),
		slog.Float64("distance_km", input.DistanceKm),
		slog.Int("scanned", len(addresses)),
		slog.Int("matched", len(matches)),
	)

	return matches, nil
}

func (s *searchService) validateInput(input *usecase.SearchInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WithDetails("search input is required")
	}
	if err := entity.ValidateCoordinate(input.Latitude, input.Longitude); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if math.IsNaN(input.DistanceKm) || math.IsInf(input.DistanceKm, 0) || input.DistanceKm < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("distance must be a non-negative number of kilometers")
	}
	if s.maxDistanceKm > 0 && input.DistanceKm > s.maxDistanceKm {
		return domainerrors.ErrSearchRadiusTooLarge.WithDetails(
			fmt.Sprintf("distance %.3f km exceeds the %.3f km limit", input.DistanceKm, s.maxDistanceKm))
	}

	return nil
}
