// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	MALLARD_HOST="0.0.0.0"
//	MALLARD_PORT="8080"
//	MALLARD_HEALTH_PORT="9090"
//	MALLARD_READ_TIMEOUT="15s"
//	MALLARD_WRITE_TIMEOUT="15s"
//
// Catalog settings:
//
//	MALLARD_CATALOG_FILE="catalog.yaml"
//	MALLARD_CATALOG_WATCH="true"
//
// Archive settings:
//
//	MALLARD_ARCHIVE_SOURCE="filesystem"  # filesystem, s3
//	MALLARD_ARCHIVE_ROOT="/var/mallard/archives"
//	MALLARD_ARCHIVE_CACHE_DIR="/var/mallard/archive-cache"
//	MALLARD_ARCHIVE_NEGATIVE_TTL="30s"
//	MALLARD_SNAPSHOT_REFRESH="@every 30m"
//	MALLARD_S3_BUCKET="mallard-docs"
//	MALLARD_S3_REGION="us-east-1"
//
// Observability settings:
//
//	MALLARD_LOG_LEVEL="info"  # debug, info, warn, error
//	MALLARD_METRICS_ENABLED="true"
//	MALLARD_OTEL_ENABLED="true"
//	MALLARD_OTEL_ENDPOINT="otel-collector:4317"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//	fmt.Printf("Catalog: %s\n", cfg.Catalog.File)
//	fmt.Printf("Log level: %v\n", cfg.Observability.LogLevel)
//
// # Related Packages
//
//   - pkg/archive: Uses archive configuration
//   - pkg/observability: Uses observability configuration
package config
