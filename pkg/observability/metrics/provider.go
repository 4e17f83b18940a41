// Package metrics provides the OpenTelemetry meter provider wiring used to
// export the instruments emitted by the metrics middleware.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// MeterProvider wraps the OpenTelemetry meter provider with lifecycle
// management. It provides meters for the middleware and graceful shutdown.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	config   Config
}

// Config holds configuration for the meter provider.
type Config struct {
	// ServiceName identifies the service in exported metrics
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment identifies the deployment environment (dev, staging, prod)
	Environment string

	// Endpoint is the OTLP collector endpoint (e.g., "localhost:4317")
	Endpoint string

	// Interval is how often the periodic reader exports (default 60s)
	Interval time.Duration

	// Enabled controls whether metrics are exported
	Enabled bool
}

// NewMeterProvider creates and initializes a meter provider with an OTLP/gRPC
// exporter behind a periodic reader. When disabled it returns a provider with
// no reader, so instruments still work but nothing is exported.
func NewMeterProvider(ctx context.Context, cfg Config) (*MeterProvider, error) {
	if !cfg.Enabled {
		return &MeterProvider{
			provider: sdkmetric.NewMeterProvider(),
			config:   cfg,
		}, nil
	}

	if cfg.ServiceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTLP endpoint is required")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("export interval must not be negative")
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = 60 * time.Second
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithInsecure(), // Use WithTLSCredentials in production
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(res),
	)

	// Set global meter provider for libraries that resolve it globally.
	// The middleware itself takes an explicit meter.
	otel.SetMeterProvider(provider)

	return &MeterProvider{
		provider: provider,
		config:   cfg,
	}, nil
}

// Meter returns a meter for the given instrumentation scope.
func (mp *MeterProvider) Meter(name string) metric.Meter {
	return mp.provider.Meter(name)
}

// Shutdown gracefully shuts down the meter provider, flushing any pending
// metrics. It should be called during application shutdown.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// ForceFlush forces the meter provider to export accumulated metrics.
func (mp *MeterProvider) ForceFlush(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	if err := mp.provider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("failed to flush meter provider: %w", err)
	}
	return nil
}
