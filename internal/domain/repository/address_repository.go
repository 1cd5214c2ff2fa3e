// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"addrbook/internal/domain/entity"
	"addrbook/internal/errors"
)

// ErrAddressNotFound is returned when no address exists for the requested ID.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for address-related database operations.
type AddressRepository interface {
	// Create persists a new address and fills in its generated ID.
	Create(ctx context.Context, address *entity.Address) error

	// FindByID retrieves an address by its ID.
	// Returns ErrAddressNotFound if no such address exists.
	FindByID(ctx context.Context, id int64) (*entity.Address, error)

	// Update replaces every mutable field of an existing address.
	// Returns ErrAddressNotFound if no such address exists.
	Update(ctx context.Context, address *entity.Address) error

	// Delete removes an address by its ID.
	// Returns ErrAddressNotFound if no such address exists.
	Delete(ctx context.Context, id int64) error

	// List returns every stored address ordered by ID.
	List(ctx context.Context) ([]*entity.Address, error)
}
