package service

import (
	"context"
)

// AddressEvent describes a committed change to an address record.
type AddressEvent struct {
	RequestID string  `json:"request_id,omitempty"` // For distributed tracing
	EventType string  `json:"event_type"`           // One of constants.AddressEvent*
	AddressID int64   `json:"address_id"`
	Street    string  `json:"street,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAddressEvent publishes an address change event
	PublishAddressEvent(ctx context.Context, event *AddressEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
