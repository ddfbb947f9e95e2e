package config

import (
	"os"
	"testing"
	"time"

	"github.com/platinummonkey/mallard/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "45s")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvDuration("TEST_DURATION", time.Minute); got != 45*time.Second {
		t.Errorf("getEnvDuration() = %v, want 45s", got)
	}
	if got := getEnvDuration("TEST_DURATION_NOT_SET", time.Minute); got != time.Minute {
		t.Errorf("getEnvDuration() default = %v, want 1m", got)
	}

	os.Setenv("TEST_DURATION_BAD", "not-a-duration")
	defer os.Unsetenv("TEST_DURATION_BAD")
	if got := getEnvDuration("TEST_DURATION_BAD", time.Minute); got != time.Minute {
		t.Errorf("getEnvDuration() invalid = %v, want default 1m", got)
	}
}

// TestLoadConfigDefaults tests that defaults produce a valid configuration
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %v, want 8080", cfg.Server.Port)
	}
	if cfg.Server.HealthPort != "9090" {
		t.Errorf("Server.HealthPort = %v, want 9090", cfg.Server.HealthPort)
	}
	if cfg.Catalog.File != "catalog.yaml" {
		t.Errorf("Catalog.File = %v, want catalog.yaml", cfg.Catalog.File)
	}
	if !cfg.Catalog.Watch {
		t.Error("Catalog.Watch should default to true")
	}
	if cfg.Archive.Source != "filesystem" {
		t.Errorf("Archive.Source = %v, want filesystem", cfg.Archive.Source)
	}
	if cfg.Archive.NegativeTTL != 30*time.Second {
		t.Errorf("Archive.NegativeTTL = %v, want 30s", cfg.Archive.NegativeTTL)
	}
	if cfg.Observability.LogLevel != observability.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.Observability.LogLevel)
	}
}

// TestLoadConfigFromEnv tests overriding configuration via environment
func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("MALLARD_PORT", "8081")
	os.Setenv("MALLARD_LOG_LEVEL", "debug")
	os.Setenv("MALLARD_ARCHIVE_SOURCE", "s3")
	os.Setenv("MALLARD_S3_BUCKET", "docs")
	os.Setenv("MALLARD_S3_ENDPOINT", "http://localhost:9000")
	os.Setenv("MALLARD_S3_USE_PATH_STYLE", "true")
	defer func() {
		os.Unsetenv("MALLARD_PORT")
		os.Unsetenv("MALLARD_LOG_LEVEL")
		os.Unsetenv("MALLARD_ARCHIVE_SOURCE")
		os.Unsetenv("MALLARD_S3_BUCKET")
		os.Unsetenv("MALLARD_S3_ENDPOINT")
		os.Unsetenv("MALLARD_S3_USE_PATH_STYLE")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("Server.Port = %v, want 8081", cfg.Server.Port)
	}
	if cfg.Observability.LogLevel != observability.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.Observability.LogLevel)
	}
	if cfg.Archive.Source != "s3" {
		t.Errorf("Archive.Source = %v, want s3", cfg.Archive.Source)
	}

	s3 := cfg.Archive.S3Config()
	if s3.Bucket != "docs" {
		t.Errorf("S3Config().Bucket = %v, want docs", s3.Bucket)
	}
	if s3.Endpoint != "http://localhost:9000" {
		t.Errorf("S3Config().Endpoint = %v, want http://localhost:9000", s3.Endpoint)
	}
	if !s3.UsePathStyle {
		t.Error("S3Config().UsePathStyle should be true")
	}
}

// TestValidate tests configuration validation failures
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "missing port",
			mutate: func(c *Config) { c.Server.Port = "" },
		},
		{
			name:   "same ports",
			mutate: func(c *Config) { c.Server.HealthPort = c.Server.Port },
		},
		{
			name:   "missing catalog file",
			mutate: func(c *Config) { c.Catalog.File = "" },
		},
		{
			name:   "unknown archive source",
			mutate: func(c *Config) { c.Archive.Source = "ftp" },
		},
		{
			name: "s3 source without bucket",
			mutate: func(c *Config) {
				c.Archive.Source = "s3"
				c.Archive.S3Bucket = ""
			},
		},
		{
			name:   "bad snapshot schedule",
			mutate: func(c *Config) { c.Archive.SnapshotRefresh = "whenever" },
		},
		{
			name: "otel enabled without endpoint",
			mutate: func(c *Config) {
				c.Observability.OTelEnabled = true
				c.Observability.OTelEndpoint = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:        loadServerConfig(),
				Catalog:       loadCatalogConfig(),
				Archive:       loadArchiveConfig(),
				Observability: loadObservabilityConfig(),
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should have failed")
			}
		})
	}
}

// TestParseLogLevel tests log level parsing
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  observability.LogLevel
	}{
		{"debug", observability.DebugLevel},
		{"info", observability.InfoLevel},
		{"warn", observability.WarnLevel},
		{"warning", observability.WarnLevel},
		{"error", observability.ErrorLevel},
		{"ERROR", observability.ErrorLevel},
		{"bogus", observability.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
