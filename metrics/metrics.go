package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicing_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoicing_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	invoiceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicing_invoice_operations_total",
		Help: "Count of invoice repository operations by result",
	}, []string{"op", "result"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicing_auth_attempts_total",
		Help: "Count of registration and login attempts by result",
	}, []string{"op", "result"})

	storeDecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicing_store_decode_failures_total",
		Help: "Stored collections that could not be parsed and were read as empty",
	}, []string{"key"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveInvoiceOp counts an invoice operation; result is "ok" or an error class.
func ObserveInvoiceOp(op, result string) {
	invoiceOperations.WithLabelValues(op, result).Inc()
}

// ObserveAuth counts a register/login attempt.
func ObserveAuth(op, result string) {
	authAttempts.WithLabelValues(op, result).Inc()
}

// ObserveDecodeFailure counts a stored value that was discarded as unparseable.
func ObserveDecodeFailure(key string) {
	storeDecodeFailures.WithLabelValues(key).Inc()
}

// Middleware records request count and latency per route pattern. Errors
// from the chain are handed to the app's ErrorHandler first so the recorded
// status is the one the client receives.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			handler := c.App().Config().ErrorHandler
			if handler == nil {
				handler = fiber.DefaultErrorHandler
			}
			if herr := handler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := strconv.Itoa(c.Response().StatusCode())
		ObserveHTTPRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return nil
	}
}
