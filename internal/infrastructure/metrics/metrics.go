package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookshelf"

// Metrics holds the HTTP collectors of the store service.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	books    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Handled HTTP requests by operation and status code.",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		books: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "book_writes_total",
			Help:      "Books written to the store by kind of write.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.books,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records count and latency of every huma operation.
func (m *Metrics) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		op := "unknown"
		if o := ctx.Operation(); o != nil && o.OperationID != "" {
			op = o.OperationID
		}
		status := ctx.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(op, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) BooksUpserted(n int) {
	m.books.WithLabelValues("upsert").Add(float64(n))
}

func (m *Metrics) BooksDeleted(n int) {
	m.books.WithLabelValues("delete").Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
