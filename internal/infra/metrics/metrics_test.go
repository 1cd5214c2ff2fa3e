package metrics

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"addrbook/config"
	"addrbook/internal/domain/repository"
	mockRepo "addrbook/internal/mocks/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, registry *Registry) string {
	t.Helper()

	var buf bytes.Buffer
	registry.WritePrometheus(&buf)

	return buf.String()
}

func TestRegistry_Middleware(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "addrbook"
	registry := New(cfg)

	e := echo.New()
	e.Use(registry.Middleware)
	e.GET("/addresses/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return echo.NewHTTPError(http.StatusNotFound, "missing")
		}

		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", registry.Handler)

	for _, path := range []string{"/addresses/1", "/addresses/2", "/addresses/404"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/addresses/:id",status="200"} 2`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/addresses/:id",status="404"} 1`)
	assert.Contains(t, body, `http_request_duration_seconds_bucket{method="GET",path="/addresses/:id",status="200"`)
	assert.Contains(t, body, `service="addrbook"`)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
}

func TestRegistry_Middleware_UnmatchedRoute(t *testing.T) {
	registry := New(nil)

	e := echo.New()
	e.Use(registry.Middleware)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, scrape(t, registry), `status="404"`)
}

func TestInstrumentTransactions(t *testing.T) {
	registry := New(nil)
	txManager := mockRepo.NewMockTransactionManager(t)
	ctx := context.Background()
	rollbackErr := errors.New("rollback")

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(nil).Once()
	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(rollbackErr).Once()

	instrumented := InstrumentTransactions(txManager, registry)
	noop := func(repository.RepositoryFactory) error { return nil }

	require.NoError(t, instrumented.Execute(ctx, noop))
	assert.ErrorIs(t, instrumented.Execute(ctx, noop), rollbackErr)

	body := scrape(t, registry)
	assert.Contains(t, body, `address_store_transactions_total{outcome="commit"} 1`)
	assert.Contains(t, body, `address_store_transactions_total{outcome="rollback"} 1`)
}
