package devserver

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// RequestIDHeader is the header used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"

	// requestIDLocalKey stores the request ID in Fiber's context locals.
	requestIDLocalKey = "request_id"

	// internalPrefix is the server's own endpoint namespace, excluded
	// from metrics so introspection does not pollute them.
	internalPrefix = "/__webrig/"
)

// requestID ensures every request carries an X-Request-ID, generating
// a UUID when the client did not send one.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDLocalKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// requestLogger writes one JSON object per request to w.
func requestLogger(w io.Writer) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals(requestIDLocalKey).(string)
		_ = enc.Encode(map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		})
		return err
	}
}

// metrics holds the dev server's Prometheus instruments.
type metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// newMetrics registers the server's instruments on reg.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webrig_http_requests_total",
				Help: "Total number of HTTP requests served.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webrig_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.requestDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// handler counts and times requests, skipping the internal endpoints.
// The served counter feeds the session summary in run history.
func (m *metrics) handler(served *atomic.Int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), internalPrefix) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		served.Add(1)

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requestCount.WithLabelValues(c.Method(), c.Path(), strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Method(), c.Path()).Observe(time.Since(start).Seconds())
		return err
	}
}
