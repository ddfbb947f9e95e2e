package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/platinummonkey/mallard/pkg/archive"
	"github.com/platinummonkey/mallard/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Catalog configuration
	Catalog CatalogConfig

	// Archive configuration
	Archive ArchiveConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// CatalogConfig holds catalog file settings
type CatalogConfig struct {
	// File is the path to the catalog YAML file.
	File string

	// Watch reloads the catalog when the file changes on disk.
	Watch bool
}

// ArchiveConfig holds documentation archive settings
type ArchiveConfig struct {
	// Source selects where archives come from: "filesystem" or "s3".
	Source string

	// FilesystemRoot is the archive directory for the filesystem source.
	FilesystemRoot string

	// CacheDir holds archives fetched from remote sources.
	CacheDir string

	// NegativeTTL bounds how long a failed archive lookup is remembered.
	NegativeTTL time.Duration

	// SnapshotRefresh is a cron expression for re-fetching snapshot
	// archives. Empty disables the refresh job.
	SnapshotRefresh string

	// S3 settings, used when Source is "s3".
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Catalog:       loadCatalogConfig(),
		Archive:       loadArchiveConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("MALLARD_HOST", "0.0.0.0"),
		Port:            getEnv("MALLARD_PORT", "8080"),
		ReadTimeout:     getEnvDuration("MALLARD_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("MALLARD_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("MALLARD_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("MALLARD_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("MALLARD_HEALTH_PORT", "9090"),
	}
}

// loadCatalogConfig loads catalog configuration from environment
func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		File:  getEnv("MALLARD_CATALOG_FILE", "catalog.yaml"),
		Watch: getEnvBool("MALLARD_CATALOG_WATCH", true),
	}
}

// loadArchiveConfig loads archive configuration from environment
func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Source:          getEnv("MALLARD_ARCHIVE_SOURCE", "filesystem"),
		FilesystemRoot:  getEnv("MALLARD_ARCHIVE_ROOT", "archives"),
		CacheDir:        getEnv("MALLARD_ARCHIVE_CACHE_DIR", "archive-cache"),
		NegativeTTL:     getEnvDuration("MALLARD_ARCHIVE_NEGATIVE_TTL", 30*time.Second),
		SnapshotRefresh: getEnv("MALLARD_SNAPSHOT_REFRESH", "@every 30m"),
		S3Endpoint:      getEnv("MALLARD_S3_ENDPOINT", ""),
		S3Region:        getEnv("MALLARD_S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("MALLARD_S3_BUCKET", ""),
		S3AccessKey:     getEnv("MALLARD_S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("MALLARD_S3_SECRET_KEY", ""),
		S3UsePathStyle:  getEnvBool("MALLARD_S3_USE_PATH_STYLE", false),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("MALLARD_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("MALLARD_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("MALLARD_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("MALLARD_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("MALLARD_OTEL_SERVICE_NAME", "mallard"),
		OTelServiceVersion: getEnv("MALLARD_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("MALLARD_OTEL_INSECURE", true),
	}
}

// S3Config converts the archive settings into an archive.S3Config.
func (a ArchiveConfig) S3Config() archive.S3Config {
	return archive.S3Config{
		Endpoint:     a.S3Endpoint,
		Region:       a.S3Region,
		Bucket:       a.S3Bucket,
		AccessKey:    a.S3AccessKey,
		SecretKey:    a.S3SecretKey,
		UsePathStyle: a.S3UsePathStyle,
		CacheDir:     a.CacheDir,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	// Validate catalog config
	if c.Catalog.File == "" {
		return fmt.Errorf("catalog file is required")
	}

	// Validate archive config based on source
	switch c.Archive.Source {
	case "filesystem":
		if c.Archive.FilesystemRoot == "" {
			return fmt.Errorf("archive root is required for filesystem source")
		}
	case "s3":
		if c.Archive.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 source")
		}
		if c.Archive.CacheDir == "" {
			return fmt.Errorf("archive cache dir is required for s3 source")
		}
	default:
		return fmt.Errorf("invalid archive source: %s (must be filesystem or s3)", c.Archive.Source)
	}

	if c.Archive.SnapshotRefresh != "" {
		if _, err := cron.ParseStandard(c.Archive.SnapshotRefresh); err != nil {
			return fmt.Errorf("invalid snapshot refresh schedule %q: %w", c.Archive.SnapshotRefresh, err)
		}
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
