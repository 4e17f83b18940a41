package metrics

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestBuildWithoutMeterFails(t *testing.T) {
	_, err := NewBuilder().Build()
	if err == nil {
		t.Fatal("expected error when building without a meter")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Reason != "no meter provided" {
		t.Errorf("expected reason %q, got %q", "no meter provided", cfgErr.Reason)
	}
}

func TestBuildWithMeterSucceeds(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	layer, err := NewBuilder().WithMeter(provider.Meter("test")).Build()
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	if layer == nil {
		t.Fatal("expected a non-nil layer")
	}
}

func TestBuilderChaining(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	b := NewBuilder()
	if b.WithMeter(provider.Meter("test")) != b {
		t.Error("WithMeter should return the same builder for chaining")
	}
}
