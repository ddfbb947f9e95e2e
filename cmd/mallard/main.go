package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/mallard/pkg/api"
	"github.com/platinummonkey/mallard/pkg/archive"
	"github.com/platinummonkey/mallard/pkg/async"
	"github.com/platinummonkey/mallard/pkg/catalog"
	"github.com/platinummonkey/mallard/pkg/config"
	"github.com/platinummonkey/mallard/pkg/docs"
	"github.com/platinummonkey/mallard/pkg/httputil"
	"github.com/platinummonkey/mallard/pkg/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithFields(map[string]interface{}{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"catalog": cfg.Catalog.File,
		"source":  cfg.Archive.Source,
	}).Info("Starting mallard documentation server")

	ctx := context.Background()

	// Load the catalog before accepting traffic. A server with no catalog
	// can only 404.
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		logger.WithError(err).Error("Failed to load catalog")
		os.Exit(1)
	}
	store := catalog.NewStore(cat)
	logger.WithField("projects", len(cat.Projects)).Info("Catalog loaded")

	// Metrics
	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
		metrics.CatalogProjects.Set(float64(len(cat.Projects)))
	}

	// Archive source
	source, err := buildSource(ctx, cfg.Archive)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize archive source")
		os.Exit(1)
	}

	providerOpts := []archive.ProviderOption{
		archive.WithLogger(logger),
		archive.WithNegativeCache(1024, cfg.Archive.NegativeTTL),
	}
	if metrics != nil {
		providerOpts = append(providerOpts, archive.WithMetrics(metrics))
	}
	provider := archive.NewProvider(source, providerOpts...)
	defer provider.Close()

	// Catalog hot reload
	if cfg.Catalog.Watch {
		watcher, err := catalog.WatchFile(cfg.Catalog.File, store, logger, func(reloaded *catalog.Catalog, err error) {
			if metrics == nil {
				return
			}
			if err != nil {
				metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
				return
			}
			metrics.CatalogReloadsTotal.WithLabelValues("success").Inc()
			metrics.CatalogProjects.Set(float64(len(reloaded.Projects)))
		})
		if err != nil {
			logger.WithError(err).Error("Failed to watch catalog file")
			os.Exit(1)
		}
		defer watcher.Close()
	}

	// Periodic snapshot refresh
	if cfg.Archive.SnapshotRefresh != "" {
		scheduler, err := provider.ScheduleSnapshotRefresh(cfg.Archive.SnapshotRefresh)
		if err != nil {
			logger.WithError(err).Error("Failed to schedule snapshot refresh")
			os.Exit(1)
		}
		defer scheduler.Stop()
		logger.WithField("schedule", cfg.Archive.SnapshotRefresh).Info("Snapshot refresh scheduled")
	}

	// Tracing and OTLP metrics export
	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize OpenTelemetry")
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := observability.ShutdownOTel(shutdownCtx, providers, logger); err != nil {
			logger.WithError(err).Warn("OpenTelemetry shutdown failed")
		}
	}()

	// Main router: API routes first so /api is never treated as a project.
	router := mux.NewRouter()
	middleware := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.RecoveryMiddleware(logger),
	}
	if metrics != nil {
		middleware = append(middleware, observability.HTTPMetricsMiddleware(metrics))
	}
	for _, mw := range middleware {
		router.Use(mw)
	}
	api.NewHandler(store).RegisterRoutes(router)
	docs.NewHandler(store, provider, logger, metrics).RegisterRoutes(router)
	// mux does not run Use middleware for the NotFoundHandler, so wrap it
	// explicitly to keep request IDs and access logs on unmatched paths.
	router.NotFoundHandler = httputil.Chain(router.NotFoundHandler, middleware...)

	var handler http.Handler = router
	if cfg.Observability.OTelEnabled {
		handler = otelhttp.NewHandler(router, "mallard")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Ops server: health probes and metrics on a separate port.
	opsServer := buildOpsServer(cfg, registry, store, source)

	// Pre-open catalog archives in the background so first requests
	// don't pay the mount cost.
	async.SafeGo(ctx, logger, 5*time.Minute, "archive warm-up", func(ctx context.Context) error {
		provider.Warm(ctx, store.Current())
		return nil
	})

	go func() {
		logger.WithField("addr", opsServer.Addr).Info("Ops server listening")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Ops server failed")
		}
	}()

	go func() {
		logger.WithField("addr", server.Addr).Info("Documentation server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server failed")
			os.Exit(1)
		}
	}()

	shutdown := observability.NewShutdownManager(logger, server, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return opsServer.Shutdown(ctx)
	})
	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown failed")
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// buildSource constructs the archive source selected by configuration.
func buildSource(ctx context.Context, cfg config.ArchiveConfig) (archive.Source, error) {
	switch cfg.Source {
	case "s3":
		return archive.NewS3Source(ctx, cfg.S3Config())
	case "filesystem":
		return archive.NewDirSource(cfg.FilesystemRoot)
	default:
		return nil, fmt.Errorf("unknown archive source: %s", cfg.Source)
	}
}

// buildOpsServer wires liveness, readiness, and metrics endpoints.
func buildOpsServer(cfg *config.Config, registry *prometheus.Registry, store *catalog.Store, source archive.Source) *http.Server {
	checker := observability.NewHealthChecker(map[string]observability.Check{
		"catalog": func(context.Context) error {
			if len(store.Current().Projects) == 0 {
				return fmt.Errorf("catalog is empty")
			}
			return nil
		},
		"archive_source": func(ctx context.Context) error {
			return source.Ping(ctx)
		},
	})

	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/healthz", checker.Liveness)
	opsMux.HandleFunc("/readyz", checker.Readiness)
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(opsMux, registry)
	}

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.HealthPort),
		Handler:      opsMux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
