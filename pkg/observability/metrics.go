package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Doc serving metrics
	RedirectsTotal   *prometheus.CounterVec
	DocServedBytes   prometheus.Counter
	DocNotFoundTotal prometheus.Counter

	// Archive metrics
	ArchiveOpensTotal        *prometheus.CounterVec
	ArchiveCacheHitsTotal    prometheus.Counter
	ArchiveCacheMissesTotal  prometheus.Counter
	ArchiveNegativeHitsTotal prometheus.Counter
	ArchivesOpen             prometheus.Gauge
	SnapshotRefreshTotal     *prometheus.CounterVec

	// Catalog metrics
	CatalogReloadsTotal *prometheus.CounterVec
	CatalogProjects     prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mallard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mallard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mallard_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "route"},
		),

		RedirectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mallard_redirects_total",
				Help: "Total number of redirects issued by the doc handler",
			},
			[]string{"kind"},
		),
		DocServedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mallard_doc_served_bytes_total",
				Help: "Total bytes of documentation content served",
			},
		),
		DocNotFoundTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mallard_doc_not_found_total",
				Help: "Total number of documentation requests answered 404",
			},
		),

		ArchiveOpensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mallard_archive_opens_total",
				Help: "Total number of archive open attempts",
			},
			[]string{"status"},
		),
		ArchiveCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mallard_archive_cache_hits_total",
				Help: "Total number of archive lookups served from open handles",
			},
		),
		ArchiveCacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mallard_archive_cache_misses_total",
				Help: "Total number of archive lookups requiring an open",
			},
		),
		ArchiveNegativeHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mallard_archive_negative_hits_total",
				Help: "Total number of archive lookups short-circuited by the negative cache",
			},
		),
		ArchivesOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mallard_archives_open",
				Help: "Number of archive handles currently open",
			},
		),
		SnapshotRefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mallard_snapshot_refresh_total",
				Help: "Total number of snapshot archive refresh attempts",
			},
			[]string{"status"},
		),

		CatalogReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mallard_catalog_reloads_total",
				Help: "Total number of catalog reload attempts",
			},
			[]string{"status"},
		),
		CatalogProjects: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mallard_catalog_projects",
				Help: "Number of projects in the published catalog",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.RedirectsTotal,
		m.DocServedBytes,
		m.DocNotFoundTotal,
		m.ArchiveOpensTotal,
		m.ArchiveCacheHitsTotal,
		m.ArchiveCacheMissesTotal,
		m.ArchiveNegativeHitsTotal,
		m.ArchivesOpen,
		m.SnapshotRefreshTotal,
		m.CatalogReloadsTotal,
		m.CatalogProjects,
	)

	return m
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics.
// It must be attached via mux's Use so the matched route template is
// available as the label, keeping cardinality bounded for arbitrary
// documentation paths.
func HTTPMetricsMiddleware(metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := "unmatched"
			if cur := mux.CurrentRoute(r); cur != nil {
				if tmpl, err := cur.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
