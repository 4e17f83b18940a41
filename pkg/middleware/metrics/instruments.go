package metrics

import (
	"go.opentelemetry.io/otel/metric"
)

// Metric names per the OpenTelemetry semantic conventions for HTTP server metrics.
// https://opentelemetry.io/docs/specs/semconv/http/http-metrics/
const (
	serverRequestDurationMetric = "http.server.request.duration"
	serverActiveRequestsMetric  = "http.server.active_requests"
	serverRequestBodySizeMetric = "http.server.request.body.size"
)

// Attribute keys per the semantic conventions.
const (
	httpRequestMethodLabel      = "http.request.method"
	httpRouteLabel              = "http.route"
	httpResponseStatusCodeLabel = "http.response.status_code"
	networkProtocolNameLabel    = "network.protocol.name"
	networkProtocolVersionLabel = "network.protocol.version"
	urlSchemeLabel              = "url.scheme"
)

// defaultDurationBoundaries are the default histogram bucket boundaries for
// request duration, in seconds. A view on the meter provider overrides them.
var defaultDurationBoundaries = []float64{
	0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1.0, 2.5, 5.0, 7.5, 10.0,
}

// instrumentSet holds the three instruments the middleware records into.
// It is created once per Layer and never mutated afterwards; the instruments
// themselves are safe for concurrent use.
type instrumentSet struct {
	serverRequestDuration metric.Float64Histogram
	serverActiveRequests  metric.Int64UpDownCounter
	serverRequestBodySize metric.Int64Histogram
}

func newInstrumentSet(meter metric.Meter) (instrumentSet, error) {
	var set instrumentSet
	var err error

	set.serverRequestDuration, err = meter.Float64Histogram(
		serverRequestDurationMetric,
		metric.WithDescription("Duration of HTTP server requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(defaultDurationBoundaries...),
	)
	if err != nil {
		return instrumentSet{}, err
	}

	set.serverActiveRequests, err = meter.Int64UpDownCounter(
		serverActiveRequestsMetric,
		metric.WithDescription("Number of active HTTP requests."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return instrumentSet{}, err
	}

	set.serverRequestBodySize, err = meter.Int64Histogram(
		serverRequestBodySizeMetric,
		metric.WithDescription("Size of HTTP server request bodies."),
		metric.WithUnit("By"),
	)
	if err != nil {
		return instrumentSet{}, err
	}

	return set, nil
}
