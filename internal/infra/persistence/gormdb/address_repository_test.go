package gormdb

import (
	"context"
	"testing"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress(street string, lat, lng float64) *entity.Address {
	return &entity.Address{
		Street:    street,
		City:      "Taipei",
		State:     "Taipei City",
		Country:   "Taiwan",
		Latitude:  lat,
		Longitude: lng,
	}
}

func TestAddressRepository_CreateAndFind(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))
	ctx := context.Background()

	address := newAddress("No. 7, Sec. 5, Xinyi Rd.", 25.0330, 121.5654)
	require.NoError(t, repo.Create(ctx, address))
	assert.Positive(t, address.ID)

	found, err := repo.FindByID(ctx, address.ID)
	require.NoError(t, err)
	assert.Equal(t, address, found)

	// Reading twice without a mutation yields the same record.
	again, err := repo.FindByID(ctx, address.ID)
	require.NoError(t, err)
	assert.Equal(t, found, again)
}

func TestAddressRepository_CreateAssignsUniqueIDs(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))
	ctx := context.Background()

	first := newAddress("A", 0, 0)
	second := newAddress("B", 0, 0)
	second.ID = first.ID

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)
}

func TestAddressRepository_CreateIgnoresCallerID(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))
	ctx := context.Background()

	address := newAddress("A", 1, 1)
	address.ID = 4242
	require.NoError(t, repo.Create(ctx, address))

	assert.NotEqual(t, int64(4242), address.ID)
}

func TestAddressRepository_FindByID_NotFound(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))

	address, err := repo.FindByID(context.Background(), 9999)

	assert.Nil(t, address)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestAddressRepository_UpdateReplacesAllFields(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))
	ctx := context.Background()

	address := newAddress("Old Street", 25.0, 121.5)
	require.NoError(t, repo.Create(ctx, address))

	replacement := &entity.Address{
		ID:        address.ID,
		Street:    "New Street",
		City:      "Kaohsiung",
		State:     "Kaohsiung City",
		Country:   "TW",
		Latitude:  0,
		Longitude: 0,
	}
	require.NoError(t, repo.Update(ctx, replacement))

	found, err := repo.FindByID(ctx, address.ID)
	require.NoError(t, err)
	assert.Equal(t, replacement, found)
}

func TestAddressRepository_Update_NotFound(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))

	address := newAddress("Nowhere", 0, 0)
	address.ID = 9999

	err := repo.Update(context.Background(), address)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestAddressRepository_Delete(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))
	ctx := context.Background()

	address := newAddress("Gone Soon", 1, 2)
	require.NoError(t, repo.Create(ctx, address))

	require.NoError(t, repo.Delete(ctx, address.ID))

	_, err := repo.FindByID(ctx, address.ID)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)

	err = repo.Delete(ctx, address.ID)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestAddressRepository_ListInInsertionOrder(t *testing.T) {
	repo := NewAddressRepository(newTestDB(t))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	streets := []string{"First", "Second", "Third"}
	for i, street := range streets {
		require.NoError(t, repo.Create(ctx, newAddress(street, float64(i), float64(i))))
	}

	addresses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, len(streets))
	for i, address := range addresses {
		assert.Equal(t, streets[i], address.Street)
		if i > 0 {
			assert.Greater(t, address.ID, addresses[i-1].ID)
		}
	}
}

func TestAddressRepository_ClosedDatabaseIsStorageError(t *testing.T) {
	db := newTestDB(t)
	repo := NewAddressRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = repo.Create(context.Background(), newAddress("Unreachable", 0, 0))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestMapper_NilSafe(t *testing.T) {
	assert.Nil(t, toAddressDomain(nil))
	assert.Nil(t, fromAddressDomain(nil))
}
