package gormdb

import (
	"context"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/errors"
	"addrbook/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// addressRepository implements the domain.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// Create persists a new address and writes the generated ID back to the entity.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)
	addressM.ID = 0

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("address violates a column constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	address.ID = addressM.ID

	return nil
}

// FindByID retrieves an address by its ID.
func (repo *addressRepository) FindByID(ctx context.Context, id int64) (*entity.Address, error) {
	var addressM model.AddressModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addressM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// Update replaces every mutable column of an existing address.
// Columns are listed explicitly so zero coordinates are written too.
func (repo *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("id = ?", address.ID).
		Updates(map[string]any{
			"street":    address.Street,
			"city":      address.City,
			"state":     address.State,
			"country":   address.Country,
			"latitude":  address.Latitude,
			"longitude": address.Longitude,
		})

	if err := result.Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("address violates a column constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update address")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// Delete removes an address by its ID.
func (repo *addressRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AddressModel{})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete address")
	}

	// If no rows were affected, it means the address was not found.
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// List returns every stored address in insertion (ID) order.
func (repo *addressRepository) List(ctx context.Context) ([]*entity.Address, error) {
	var addressModels []*model.AddressModel

	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&addressModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:        data.ID,
		Street:    data.Street,
		City:      data.City,
		State:     data.State,
		Country:   data.Country,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:        data.ID,
		Street:    data.Street,
		City:      data.City,
		State:     data.State,
		Country:   data.Country,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
	}
}
