package entity

import "time"

// AddressEvent is one journaled change to an address as delivered by the event stream.
// The address fields hold the record as it was right after the change.
type AddressEvent struct {
	ID          int64     `json:"id"`
	MessageID   string    `json:"message_id"`
	EventType   string    `json:"event_type"`
	AddressID   int64     `json:"address_id"`
	RequestID   string    `json:"request_id,omitempty"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	PublishedAt time.Time `json:"published_at"`
	ReceivedAt  time.Time `json:"received_at"`
}
