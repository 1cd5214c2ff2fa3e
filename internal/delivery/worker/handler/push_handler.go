package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"addrbook/config"
	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/domain/constants"
	"addrbook/internal/domain/entity"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError marks failures that Pub/Sub should redeliver
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

var knownEventTypes = []string{
	constants.AddressEventCreated,
	constants.AddressEventUpdated,
	constants.AddressEventDeleted,
}

// tokenValidator has the signature of idtoken.Validate.
type tokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// PushHandler journals address change events delivered by Pub/Sub push.
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validateToken  tokenValidator
	eventRepo      repository.AddressEventRepository
	logger         *slog.Logger
	now            func() time.Time
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	EventRepo repository.AddressEventRepository
}

func NewPushHandler(params PushHandlerParams) *PushHandler {
	workerCfg := params.Config.Worker
	if workerCfg == nil {
		workerCfg = &config.WorkerConfig{}
	}

	return &PushHandler{
		verifyPushAuth: workerCfg.VerifyPushAuth,
		audience:       workerCfg.Audience,
		validateToken:  idtoken.Validate,
		eventRepo:      params.EventRepo,
		logger:         params.Logger,
		now:            time.Now,
	}
}

// HandlePush handles POST /push.
// 2xx acknowledges the message; 503 asks Pub/Sub to redeliver it.
// Malformed or unknown events are acknowledged and dropped so they do not block the subscription.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.AddressEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse address event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if err := h.processEvent(ctx, &pushMsg, &event); err != nil {
		reqLogger.Error("[Worker] Failed to journal address event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.String("event_type", event.EventType),
			slog.Int64("address_id", event.AddressID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.AddressEvent) string {
	if requestID := pushMsg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

func (h *PushHandler) processEvent(ctx context.Context, pushMsg *PubSubMessage, event *service.AddressEvent) error {
	if !slices.Contains(knownEventTypes, event.EventType) {
		return errors.Errorf("unknown event type %q", event.EventType)
	}
	if event.AddressID <= 0 {
		return errors.Errorf("invalid address id %d", event.AddressID)
	}
	if pushMsg.Message.MessageID == "" {
		return errors.New("missing message id")
	}

	receivedAt := h.now().UTC()
	publishedAt, err := time.Parse(time.RFC3339Nano, pushMsg.Message.PublishTime)
	if err != nil {
		publishedAt = receivedAt
	}

	journaled := &entity.AddressEvent{
		MessageID:   pushMsg.Message.MessageID,
		EventType:   event.EventType,
		AddressID:   event.AddressID,
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Street:      event.Street,
		City:        event.City,
		State:       event.State,
		Country:     event.Country,
		Latitude:    event.Latitude,
		Longitude:   event.Longitude,
		PublishedAt: publishedAt.UTC(),
		ReceivedAt:  receivedAt,
	}

	inserted, err := h.eventRepo.Record(ctx, journaled)
	if err != nil {
		return newRetryableError(err)
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
	if !inserted {
		logger.Info("[Worker] Duplicate delivery ignored", slog.String("message_id", journaled.MessageID))

		return nil
	}

	logger.Info("[Worker] Address event journaled",
		slog.Int64("event_id", journaled.ID),
		slog.String("event_type", journaled.EventType),
		slog.Int64("address_id", journaled.AddressID),
	)

	return nil
}

// verifyPubSubToken checks the Google-signed OIDC token attached to authenticated push requests.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
