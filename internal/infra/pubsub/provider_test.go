package pubsub

import (
	"context"
	"testing"

	"addrbook/config"
	"addrbook/internal/domain/constants"
	"addrbook/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
		check   func(t *testing.T, publisher service.EventPublisher)
	}{
		{
			name: "not configured",
			cfg:  nil,
			check: func(t *testing.T, publisher service.EventPublisher) {
				assert.IsType(t, &noopPublisher{}, publisher)
			},
		},
		{
			name: "empty provider",
			cfg:  &config.PubSubConfig{},
			check: func(t *testing.T, publisher service.EventPublisher) {
				assert.IsType(t, &noopPublisher{}, publisher)
			},
		},
		{
			name: "local",
			cfg:  &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"},
			check: func(t *testing.T, publisher service.EventPublisher) {
				local, ok := publisher.(*localHTTPPublisher)
				require.True(t, ok)
				assert.Equal(t, "http://localhost:8081/push", local.endpoint)
			},
		},
		{
			name:    "local without endpoint",
			cfg:     &config.PubSubConfig{Provider: constants.PubSubProviderLocal},
			wantErr: "local endpoint is required",
		},
		{
			name:    "google without project",
			cfg:     &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, TopicID: "address-events"},
			wantErr: "project ID is required",
		},
		{
			name:    "google without topic",
			cfg:     &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "addrbook"},
			wantErr: "topic ID is required",
		},
		{
			name:    "unknown provider",
			cfg:     &config.PubSubConfig{Provider: "kafka"},
			wantErr: "unknown pubsub provider: kafka",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := NewPublisher(context.Background(), tt.cfg, newDiscardLogger())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, publisher)

				return
			}

			require.NoError(t, err)
			tt.check(t, publisher)
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(newDiscardLogger())

	assert.NoError(t, publisher.PublishAddressEvent(context.Background(), &service.AddressEvent{AddressID: 1}))
	assert.NoError(t, publisher.Close())
}

func TestEventAttributes_WithoutRequestID(t *testing.T) {
	attributes := eventAttributes(&service.AddressEvent{EventType: constants.AddressEventUpdated, AddressID: 9})

	assert.Equal(t, map[string]string{
		"event_type": constants.AddressEventUpdated,
		"address_id": "9",
	}, attributes)
}
