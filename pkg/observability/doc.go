// Package observability provides structured logging, Prometheus metrics,
// health probes, OpenTelemetry tracing, and graceful shutdown for the
// mallard documentation server.
//
// # Structured Logging
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("project", "duckling").Info("Archive mounted")
//
// Request-scoped loggers travel through context:
//
//	logger := observability.FromContext(r.Context())
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RedirectsTotal.WithLabelValues("version_alias").Inc()
//
// HTTPMetricsMiddleware labels requests with the matched mux route
// template instead of the raw path, since documentation paths are
// unbounded.
//
// # Health Probes
//
// Liveness and Readiness handlers serve the ops port; readiness runs
// caller-supplied dependency checks (catalog published, archive source
// reachable).
//
// # Tracing and OTLP Metrics
//
// InitOTel sets up OTLP/gRPC tracer and meter providers on the same
// collector endpoint when enabled; request spans come from wrapping the
// router with otelhttp. ShutdownOTel flushes both on exit.
package observability
