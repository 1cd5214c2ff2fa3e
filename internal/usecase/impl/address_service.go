// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/domain/constants"
	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/errors"
	"addrbook/internal/usecase"

	"go.uber.org/fx"
)

// publishTimeout bounds how long a committed write waits for its change event.
const publishTimeout = 5 * time.Second

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAddress validates the input and stores it as a new address in one transaction.
func (srv *addressService) CreateAddress(ctx context.Context, input *usecase.AddressInput) (*entity.Address, error) {
	address := &entity.Address{}
	if err := applyAddressInput(address, input); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AddressRepo().Create(ctx, address)
	})
	if err != nil {
		return nil, srv.storeError(ctx, err, "failed to create address")
	}

	srv.log(ctx).Info("Address created", slog.Int64("address_id", address.ID))
	srv.publish(ctx, constants.AddressEventCreated, address)

	return address, nil
}

// GetAddress retrieves a single address by ID.
func (srv *addressService) GetAddress(ctx context.Context, id int64) (*entity.Address, error) {
	address, err := srv.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.storeError(ctx, err, "failed to find address")
	}

	return address, nil
}

// UpdateAddress reads the current record and replaces every field inside one transaction.
// The ID is never changed.
func (srv *addressService) UpdateAddress(ctx context.Context, id int64, input *usecase.AddressInput) (*entity.Address, error) {
	replacement := &entity.Address{ID: id}
	if err := applyAddressInput(replacement, input); err != nil {
		return nil, err
	}

	var updated *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := addressRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		address.Street = replacement.Street
		address.City = replacement.City
		address.State = replacement.State
		address.Country = replacement.Country
		address.Latitude = replacement.Latitude
		address.Longitude = replacement.Longitude

		if err := addressRepo.Update(ctx, address); err != nil {
			return err
		}

		updated = address

		return nil
	})
	if err != nil {
		return nil, srv.storeError(ctx, err, "failed to update address")
	}

	srv.log(ctx).Info("Address updated", slog.Int64("address_id", updated.ID))
	srv.publish(ctx, constants.AddressEventUpdated, updated)

	return updated, nil
}

// DeleteAddress removes an address permanently.
func (srv *addressService) DeleteAddress(ctx context.Context, id int64) error {
	var deleted *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := addressRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := addressRepo.Delete(ctx, id); err != nil {
			return err
		}

		deleted = address

		return nil
	})
	if err != nil {
		return srv.storeError(ctx, err, "failed to delete address")
	}

	srv.log(ctx).Info("Address deleted", slog.Int64("address_id", id))
	srv.publish(ctx, constants.AddressEventDeleted, deleted)

	return nil
}

// ListAddresses returns every stored address in ID order.
func (srv *addressService) ListAddresses(ctx context.Context) ([]*entity.Address, error) {
	addresses, err := srv.addressRepo.List(ctx)
	if err != nil {
		return nil, srv.storeError(ctx, err, "failed to list addresses")
	}

	return addresses, nil
}

// applyAddressInput copies every input field onto the address and validates the result.
func applyAddressInput(address *entity.Address, input *usecase.AddressInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WithDetails("address input is required")
	}

	address.Street = input.Street
	address.City = input.City
	address.State = input.State
	address.Country = input.Country
	address.Latitude = input.Latitude
	address.Longitude = input.Longitude

	if err := address.Validate(); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

// storeError converts repository errors into application errors and logs storage failures.
func (srv *addressService) storeError(ctx context.Context, err error, details string) error {
	mapped := mapStoreError(err, details)

	var appErr domainerrors.AppError
	if errors.As(mapped, &appErr) && appErr.HTTPCode() >= http.StatusInternalServerError {
		srv.log(ctx).Error("Address store operation failed", slog.String("details", details), slog.Any("error", err))
	}

	return mapped
}

// mapStoreError maps repository sentinels to domain errors.
// Errors that already carry an HTTP mapping pass through unchanged.
func mapStoreError(err error, details string) error {
	if errors.Is(err, repository.ErrAddressNotFound) {
		return domainerrors.ErrAddressNotFound
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// publish emits an address change event. The write is already committed, so failures are only logged.
func (srv *addressService) publish(ctx context.Context, eventType string, address *entity.Address) {
	if srv.publisher == nil || address == nil {
		return
	}

	event := &service.AddressEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		EventType: eventType,
		AddressID: address.ID,
		Street:    address.Street,
		City:      address.City,
		State:     address.State,
		Country:   address.Country,
		Latitude:  address.Latitude,
		Longitude: address.Longitude,
	}

	// Detached from the request so a client disconnect does not drop the event.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := srv.publisher.PublishAddressEvent(publishCtx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish address event",
			slog.String("event_type", eventType),
			slog.Int64("address_id", address.ID),
			slog.Any("error", err),
		)
	}
}
