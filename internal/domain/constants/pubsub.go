package constants

// Pub/Sub provider names accepted by pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Address change event types.
const (
	AddressEventCreated = "address.created"
	AddressEventUpdated = "address.updated"
	AddressEventDeleted = "address.deleted"
)
