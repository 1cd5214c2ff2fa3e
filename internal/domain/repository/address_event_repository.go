package repository

import (
	"context"

	"addrbook/internal/domain/entity"
)

// AddressEventRepository stores the journal of address change events.
type AddressEventRepository interface {
	// Record appends the event unless one with the same MessageID is already stored.
	// It reports whether a new row was written and fills in the event ID when it was.
	Record(ctx context.Context, event *entity.AddressEvent) (bool, error)

	// ListByAddress returns the events of one address, oldest first.
	ListByAddress(ctx context.Context, addressID int64) ([]*entity.AddressEvent, error)
}
