package usecase

import (
	"context"

	"addrbook/internal/domain/entity"
)

// AddressInput carries the caller-supplied fields of an address.
// It is used for both creation and full replacement.
type AddressInput struct {
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddressUsecase defines the interface for address management use cases
type AddressUsecase interface {
	// CreateAddress stores a new address and returns it with its assigned ID
	CreateAddress(ctx context.Context, input *AddressInput) (*entity.Address, error)

	// GetAddress retrieves a single address by ID
	GetAddress(ctx context.Context, id int64) (*entity.Address, error)

	// UpdateAddress replaces every field of an existing address
	UpdateAddress(ctx context.Context, id int64, input *AddressInput) (*entity.Address, error)

	// DeleteAddress removes an address permanently
	DeleteAddress(ctx context.Context, id int64) error

	// ListAddresses returns every stored address in ID order
	ListAddresses(ctx context.Context) ([]*entity.Address, error)
}
