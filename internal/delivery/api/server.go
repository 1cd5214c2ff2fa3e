// Package api serves the address book HTTP API.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"addrbook/config"
	"addrbook/internal/delivery"
	apimiddleware "addrbook/internal/delivery/api/middleware"
	"addrbook/internal/delivery/api/router"
	"addrbook/internal/delivery/api/validator"
	"addrbook/internal/delivery/middleware"
	"addrbook/internal/domain/lifecycle"
	"addrbook/internal/errors"
	"addrbook/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	hostPort string
	h2Server *http2.Server
	logger   *slog.Logger
	server   *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	Metrics      *metrics.Registry
	RouterParams router.RouterParams
}

// NewServer builds the address API and registers its shutdown hook.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := newEcho(params.Cfg, params.Logger, params.Metrics)
	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	port := params.Cfg.HTTP.Port
	if port == 0 {
		port = config.DefaultHTTPPort
	}

	srv := &apiServer{
		hostPort: net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
		h2Server: &http2.Server{
			IdleTimeout: params.Cfg.HTTP.Timeouts.IdleTimeout,
		},
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// newEcho applies timeouts, the middleware chain, error rendering and validation.
// Routes are registered by the caller.
func newEcho(cfg *config.Config, logger *slog.Logger, registry *metrics.Registry) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	timeouts := cfg.HTTP.Timeouts
	echoServer.Server.ReadTimeout = timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = timeouts.IdleTimeout

	// Order matters: the request ID must exist before the logger runs,
	// and metrics sit inside the logger so it sees the rendered status.
	echoServer.Use(
		echomiddleware.Recover(),
		middleware.NewRequestIDMiddleware(logger).Process,
		middleware.NewLoggerMiddleware(logger, cfg).Handle,
		registry.Middleware,
		echomiddleware.CORS(),
		echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize),
	)

	echoServer.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	echoServer.Validator = validator.New()

	return echoServer
}

func (s *apiServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting API HTTP server", slog.String("host_port", s.hostPort))
	if err := s.server.StartH2CServer(s.hostPort, s.h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
