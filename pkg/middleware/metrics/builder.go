package metrics

import (
	"go.opentelemetry.io/otel/metric"
)

// ConfigError reports a misconfigured Builder. It is only returned at
// construction time; a built Layer never fails.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "metrics middleware config: " + e.Reason
}

// BuildError wraps a failure bubbled up from the meter while creating
// instruments.
type BuildError struct {
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	return "metrics middleware build: " + e.Reason + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Builder constructs a Layer from a meter. The zero Builder is not usable;
// callers must attach a meter before Build.
type Builder struct {
	meter metric.Meter
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithMeter attaches the meter the instruments are created from and returns
// the builder for chaining. An explicit meter (rather than the global meter
// provider) keeps the middleware testable against an in-memory reader.
func (b *Builder) WithMeter(meter metric.Meter) *Builder {
	b.meter = meter
	return b
}

// Build validates the configuration, creates the instrument set and returns
// the shared Layer. Returns *ConfigError when no meter was provided and
// *BuildError when the meter rejects an instrument.
func (b *Builder) Build() (*Layer, error) {
	if b.meter == nil {
		return nil, &ConfigError{Reason: "no meter provided"}
	}

	instruments, err := newInstrumentSet(b.meter)
	if err != nil {
		return nil, &BuildError{Reason: "creating instruments", Err: err}
	}

	return &Layer{instruments: instruments}, nil
}
