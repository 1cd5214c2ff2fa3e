// Package metrics exposes Prometheus-format metrics for HTTP requests and
// address store transactions.
package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"addrbook/config"
	"addrbook/internal/domain/repository"

	vm "github.com/VictoriaMetrics/metrics"
	"github.com/labstack/echo/v4"
)

const unmatchedRoute = "unmatched"

//nolint:gochecknoglobals,mnd // 1ms .. ~3s
var buckets = vm.ExponentialBuckets(1e-3, 5, 6)

// Registry owns the metric set of one process.
type Registry struct {
	set       *vm.Set
	buildInfo string
}

// New creates a registry labelled with the service name.
func New(cfg *config.Config) *Registry {
	serviceName := ""
	if cfg != nil {
		serviceName = cfg.Env.ServiceName
	}

	return &Registry{
		set: vm.NewSet(),
		buildInfo: fmt.Sprintf("build_info{goversion=%q,service=%q} 1\n",
			runtime.Version(), serviceName),
	}
}

// Middleware records request counts and latencies labelled by method, route template and status.
// Errors are handed to echo's error handler first so the recorded status is the one sent.
func (r *Registry) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = unmatchedRoute
		}

		labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, c.Request().Method, route, c.Response().Status)
		r.set.GetOrCreateCounter("http_requests_total" + labels).Inc()
		r.set.GetOrCreatePrometheusHistogramExt("http_request_duration_seconds"+labels, buckets).UpdateDuration(start)

		return nil
	}
}

// Handler serves all metrics in Prometheus text format.
func (r *Registry) Handler(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/plain; version=0.0.4; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	r.WritePrometheus(c.Response())

	return nil
}

// WritePrometheus writes build info, the registry's metrics and process metrics to w.
func (r *Registry) WritePrometheus(w io.Writer) {
	_, _ = io.WriteString(w, r.buildInfo)
	r.set.WritePrometheus(w)
	vm.WriteProcessMetrics(w)
}

// observeTransaction records the outcome and duration of one store transaction.
func (r *Registry) observeTransaction(start time.Time, err error) {
	outcome := "commit"
	if err != nil {
		outcome = "rollback"
	}

	labels := fmt.Sprintf(`{outcome=%q}`, outcome)
	r.set.GetOrCreateCounter("address_store_transactions_total" + labels).Inc()
	r.set.GetOrCreatePrometheusHistogramExt("address_store_transaction_duration_seconds"+labels, buckets).UpdateDuration(start)
}

// instrumentedTransactionManager wraps a TransactionManager with transaction metrics.
type instrumentedTransactionManager struct {
	next     repository.TransactionManager
	registry *Registry
}

// InstrumentTransactions decorates txManager so every Execute call is counted and timed.
func InstrumentTransactions(txManager repository.TransactionManager, registry *Registry) repository.TransactionManager {
	return &instrumentedTransactionManager{
		next:     txManager,
		registry: registry,
	}
}

func (m *instrumentedTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	start := time.Now()
	err := m.next.Execute(ctx, fn)
	m.registry.observeTransaction(start, err)

	return err
}

