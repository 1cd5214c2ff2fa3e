package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"addrbook/internal/domain/constants"
	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/service"
	"addrbook/internal/errors"
	mockRepo "addrbook/internal/mocks/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestPushHandler(t *testing.T) (*PushHandler, *mockRepo.MockAddressEventRepository) {
	eventRepo := mockRepo.NewMockAddressEventRepository(t)

	return &PushHandler{
		eventRepo: eventRepo,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return fixedNow },
	}, eventRepo
}

func pushBody(t *testing.T, messageID string, event *service.AddressEvent, attributes map[string]string) []byte {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = messageID
	msg.Message.PublishTime = "2026-03-04T05:06:00.5Z"
	msg.Subscription = "projects/local/subscriptions/address-events-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func servePush(h *PushHandler, body []byte, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()

	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func createdEvent() *service.AddressEvent {
	return &service.AddressEvent{
		RequestID: "req-from-payload",
		EventType: constants.AddressEventCreated,
		AddressID: 7,
		Street:    "Main St",
		City:      "Taipei",
		State:     "Taipei City",
		Country:   "Taiwan",
		Latitude:  25.03,
		Longitude: 121.56,
	}
}

func TestHandlePush_JournalsEvent(t *testing.T) {
	h, eventRepo := newTestPushHandler(t)

	eventRepo.EXPECT().
		Record(mock.Anything, mock.AnythingOfType("*entity.AddressEvent")).
		Run(func(_ context.Context, event *entity.AddressEvent) {
			assert.Equal(t, &entity.AddressEvent{
				MessageID:   "msg-1",
				EventType:   constants.AddressEventCreated,
				AddressID:   7,
				RequestID:   "req-from-attribute",
				Street:      "Main St",
				City:        "Taipei",
				State:       "Taipei City",
				Country:     "Taiwan",
				Latitude:    25.03,
				Longitude:   121.56,
				PublishedAt: time.Date(2026, 3, 4, 5, 6, 0, 500_000_000, time.UTC),
				ReceivedAt:  fixedNow,
			}, event)
		}).
		Return(true, nil).
		Once()

	rec := servePush(h, pushBody(t, "msg-1", createdEvent(), map[string]string{"request_id": "req-from-attribute"}), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_RequestIDFallsBackToPayload(t *testing.T) {
	h, eventRepo := newTestPushHandler(t)

	eventRepo.EXPECT().
		Record(mock.Anything, mock.MatchedBy(func(event *entity.AddressEvent) bool {
			return event.RequestID == "req-from-payload"
		})).
		Return(true, nil).
		Once()

	rec := servePush(h, pushBody(t, "msg-1", createdEvent(), nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_DuplicateDeliveryIsAcknowledged(t *testing.T) {
	h, eventRepo := newTestPushHandler(t)

	eventRepo.EXPECT().Record(mock.Anything, mock.Anything).Return(false, nil).Once()

	rec := servePush(h, pushBody(t, "msg-1", createdEvent(), nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_StorageFailureAsksForRedelivery(t *testing.T) {
	h, eventRepo := newTestPushHandler(t)

	eventRepo.EXPECT().
		Record(mock.Anything, mock.Anything).
		Return(false, domainerrors.NewDatabaseExecuteError(errors.New("database is locked"), "failed to record address event")).
		Once()

	rec := servePush(h, pushBody(t, "msg-1", createdEvent(), nil), nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_PoisonMessagesAreDropped(t *testing.T) {
	unknownType := createdEvent()
	unknownType.EventType = "address.renamed"

	invalidID := createdEvent()
	invalidID.AddressID = 0

	tests := []struct {
		name      string
		messageID string
		event     *service.AddressEvent
	}{
		{name: "unknown event type", messageID: "msg-1", event: unknownType},
		{name: "non-positive address id", messageID: "msg-2", event: invalidID},
		{name: "missing message id", messageID: "", event: createdEvent()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestPushHandler(t)

			rec := servePush(h, pushBody(t, tt.messageID, tt.event, nil), nil)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestHandlePush_MalformedPayload(t *testing.T) {
	notJSON := base64.StdEncoding.EncodeToString([]byte("not json"))

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid envelope", body: `{"message": `},
		{name: "invalid base64", body: `{"message":{"data":"%%%","messageId":"m"}}`},
		{name: "invalid event json", body: `{"message":{"data":"` + notJSON + `","messageId":"m"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestPushHandler(t)

			rec := servePush(h, []byte(tt.body), nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlePush_VerifiesPushToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		payload    *idtoken.Payload
		validErr   error
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "validation error", authHeader: "Bearer token", validErr: errors.New("token expired"), wantStatus: http.StatusUnauthorized},
		{name: "foreign issuer", authHeader: "Bearer token", payload: &idtoken.Payload{Issuer: "https://evil.example"}, wantStatus: http.StatusUnauthorized},
		{
			name:       "unverified email",
			authHeader: "Bearer token",
			payload:    &idtoken.Payload{Issuer: "accounts.google.com", Claims: map[string]any{"email_verified": false}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer token",
			payload:    &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, eventRepo := newTestPushHandler(t)
			h.verifyPushAuth = true
			h.audience = "https://worker.example/push"
			h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
				assert.Equal(t, "token", token)
				assert.Equal(t, "https://worker.example/push", audience)

				return tt.payload, tt.validErr
			}
			if tt.wantStatus == http.StatusOK {
				eventRepo.EXPECT().Record(mock.Anything, mock.Anything).Return(true, nil).Once()
			}

			header := http.Header{}
			if tt.authHeader != "" {
				header.Set(echo.HeaderAuthorization, tt.authHeader)
			}

			rec := servePush(h, pushBody(t, "msg-1", createdEvent(), nil), header)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestVerifyPubSubToken_DerivesAudienceFromRequest(t *testing.T) {
	h, _ := newTestPushHandler(t)

	var gotAudience string
	h.validateToken = func(_ context.Context, _, audience string) (*idtoken.Payload, error) {
		gotAudience = audience

		return &idtoken.Payload{Issuer: "accounts.google.com"}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "http://worker.local:8081/push", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")

	require.NoError(t, h.verifyPubSubToken(req))
	assert.Equal(t, "http://worker.local:8081/push", gotAudience)
}
