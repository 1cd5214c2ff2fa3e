package impl

import (
	"context"
	"math"
	"testing"

	"addrbook/config"
	"addrbook/internal/domain/entity"
	mockRepo "addrbook/internal/mocks/repository"
	"addrbook/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSearchService(t *testing.T, maxDistanceKm float64) (usecase.SearchUsecase, *mockRepo.MockAddressRepository) {
	addressRepo := mockRepo.NewMockAddressRepository(t)
	service := NewSearchService(SearchServiceParams{
		AddressRepo: addressRepo,
		Config:      &config.Config{Search: &config.SearchConfig{MaxDistanceKm: maxDistanceKm}},
		Logger:      newDiscardLogger(),
	})

	return service, addressRepo
}

func matchIDs(matches []*usecase.AddressMatch) []int64 {
	ids := make([]int64, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match.ID)
	}

	return ids
}

func TestSearchService_SearchWithinRadius(t *testing.T) {
	stored := []*entity.Address{
		{ID: 1, Street: "Origin", Latitude: 0, Longitude: 0},
		{ID: 2, Street: "One degree north", Latitude: 1, Longitude: 0},
		{ID: 3, Street: "Ten degrees north", Latitude: 10, Longitude: 0},
	}

	tests := []struct {
		name     string
		input    *usecase.SearchInput
		expected []int64
	}{
		{name: "200 km around the origin", input: &usecase.SearchInput{DistanceKm: 200}, expected: []int64{1, 2}},
		{name: "zero radius matches only the exact point", input: &usecase.SearchInput{DistanceKm: 0}, expected: []int64{1}},
		{name: "everything within 2000 km", input: &usecase.SearchInput{DistanceKm: 2000}, expected: []int64{1, 2, 3}},
		{name: "nothing near the antipode", input: &usecase.SearchInput{Latitude: -45, Longitude: 180, DistanceKm: 100}, expected: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, addressRepo := createTestSearchService(t, 0)
			ctx := context.Background()

			addressRepo.EXPECT().List(ctx).Return(stored, nil)

			matches, err := service.SearchWithinRadius(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matchIDs(matches))
		})
	}
}

func TestSearchService_SearchWithinRadius_ReportsDistance(t *testing.T) {
	service, addressRepo := createTestSearchService(t, 0)
	ctx := context.Background()

	addressRepo.EXPECT().List(ctx).Return([]*entity.Address{{ID: 1, Latitude: 1, Longitude: 0}}, nil)

	matches, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{DistanceKm: 200})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 111.195, matches[0].DistanceKm, 0.001)
}

func TestSearchService_SearchWithinRadius_BoundaryIsInclusive(t *testing.T) {
	service, addressRepo := createTestSearchService(t, 0)
	ctx := context.Background()

	addressRepo.EXPECT().List(ctx).Return([]*entity.Address{{ID: 1, Latitude: 1, Longitude: 0}}, nil).Times(2)

	exact, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{DistanceKm: 200})
	require.NoError(t, err)
	require.Len(t, exact, 1)

	matches, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{DistanceKm: exact[0].DistanceKm})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, matchIDs(matches))
}

func TestSearchService_SearchWithinRadius_EmptyStore(t *testing.T) {
	service, addressRepo := createTestSearchService(t, 0)
	ctx := context.Background()

	addressRepo.EXPECT().List(ctx).Return([]*entity.Address{}, nil)

	matches, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{Latitude: 25, Longitude: 121, DistanceKm: 10})
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestSearchService_SearchWithinRadius_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		input     *usecase.SearchInput
		errorCode string
	}{
		{name: "nil input", input: nil, errorCode: "VALIDATION_FAILED"},
		{name: "latitude out of range", input: &usecase.SearchInput{Latitude: 91, DistanceKm: 1}, errorCode: "VALIDATION_FAILED"},
		{name: "longitude out of range", input: &usecase.SearchInput{Longitude: 181, DistanceKm: 1}, errorCode: "VALIDATION_FAILED"},
		{name: "negative distance", input: &usecase.SearchInput{DistanceKm: -1}, errorCode: "VALIDATION_FAILED"},
		{name: "NaN distance", input: &usecase.SearchInput{DistanceKm: math.NaN()}, errorCode: "VALIDATION_FAILED"},
		{name: "infinite distance", input: &usecase.SearchInput{DistanceKm: math.Inf(1)}, errorCode: "VALIDATION_FAILED"},
		{name: "beyond the configured cap", input: &usecase.SearchInput{DistanceKm: 500.5}, errorCode: "SEARCH_RADIUS_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := createTestSearchService(t, 500)

			matches, err := service.SearchWithinRadius(context.Background(), tt.input)

			assert.Nil(t, matches)
			requireAppError(t, err, tt.errorCode, 400)
		})
	}
}

func TestSearchService_SearchWithinRadius_AtTheCap(t *testing.T) {
	service, addressRepo := createTestSearchService(t, 500)
	ctx := context.Background()

	addressRepo.EXPECT().List(ctx).Return([]*entity.Address{}, nil)

	_, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{DistanceKm: 500})
	require.NoError(t, err)
}

func TestSearchService_SearchWithinRadius_StoreError(t *testing.T) {
	service, addressRepo := createTestSearchService(t, 0)
	ctx := context.Background()

	addressRepo.EXPECT().List(ctx).Return(nil, errors.New("database is closed"))

	matches, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{DistanceKm: 1})

	assert.Nil(t, matches)
	requireAppError(t, err, "DATABASE_EXECUTE_FAILED", 500)
}

func TestNewSearchService_WithoutSearchConfig(t *testing.T) {
	addressRepo := mockRepo.NewMockAddressRepository(t)
	service := NewSearchService(SearchServiceParams{
		AddressRepo: addressRepo,
		Config:      &config.Config{},
		Logger:      newDiscardLogger(),
	})
	ctx := context.Background()

	addressRepo.EXPECT().List(ctx).Return([]*entity.Address{{ID: 1}}, nil)

	matches, err := service.SearchWithinRadius(ctx, &usecase.SearchInput{DistanceKm: 20000})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
