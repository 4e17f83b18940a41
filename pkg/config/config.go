// Package config loads the observability configuration for applications
// embedding the metrics middleware.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServiceConfig identifies the service in exported telemetry.
type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// MetricsConfig configures the OTLP metric export pipeline.
type MetricsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	Interval time.Duration `mapstructure:"interval"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			Name:        "httpmetrics",
			Environment: "development",
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Endpoint: "localhost:4317",
			Interval: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
