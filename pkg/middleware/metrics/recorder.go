package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nimburion/httpmetrics/pkg/server/router"
)

// requestCapture holds the request-scoped data the recorder needs at
// completion. Everything label-relevant is extracted before the request is
// forwarded downstream, so completion only adds the status code.
type requestCapture struct {
	durationStart   time.Time
	method          string
	route           string
	protocolVersion string
	urlScheme       string

	// bodySize is the parsed Content-Length, or -1 when the header was
	// absent or not a non-negative integer.
	bodySize int64
}

func captureRequest(r *http.Request) requestCapture {
	return requestCapture{
		durationStart:   time.Now(),
		method:          r.Method,
		route:           router.MatchedRoute(r.Context()),
		protocolVersion: formatProtocolVersion(r.ProtoMajor, r.ProtoMinor),
		urlScheme:       requestScheme(r),
		bodySize:        parseContentLength(r.Header.Get("Content-Length")),
	}
}

// formatProtocolVersion maps the request's protocol version to the semantic
// convention string. Unknown versions map to an empty string.
func formatProtocolVersion(major, minor int) string {
	switch {
	case major == 0 && minor == 9:
		return "0.9"
	case major == 1 && minor == 0:
		return "1.0"
	case major == 1 && minor == 1:
		return "1.1"
	case major == 2 && minor == 0:
		return "2.0"
	case major == 3 && minor == 0:
		return "3.0"
	default:
		return ""
	}
}

// requestScheme returns the scheme for the url.scheme attribute. A scheme on
// the request URI (absolute-form target) wins; server requests normally use
// origin-form targets with no scheme, so fall back to the connection type.
func requestScheme(r *http.Request) string {
	if r.URL != nil && r.URL.Scheme != "" {
		return strings.ToLower(r.URL.Scheme)
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// parseContentLength returns the header value as a non-negative integer, or
// -1 when absent or malformed.
func parseContentLength(value string) int64 {
	if value == "" {
		return -1
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// Recorder is the request-scoped half of the middleware. It is created by
// Layer.Begin, which adds +1 to active_requests, and must be finished by
// exactly one of Complete, Abort or Cancel, each of which adds the matching
// -1. Terminal calls after the first are no-ops, so a deferred Cancel is a
// safe backstop on every exit path.
type Recorder struct {
	layer   *Layer
	ctx     context.Context
	capture requestCapture
	done    atomic.Bool
}

// Begin captures the request attributes, increments active_requests and
// returns the recorder awaiting the handler's completion.
func (l *Layer) Begin(r *http.Request) *Recorder {
	rec := &Recorder{
		layer:   l,
		ctx:     r.Context(),
		capture: captureRequest(r),
	}
	l.instruments.serverActiveRequests.Add(rec.ctx, 1, metric.WithAttributes(rec.activeRequestAttrs()...))
	return rec
}

// Complete records the request duration and, when a parseable Content-Length
// was present, the request body size, then decrements active_requests.
func (r *Recorder) Complete(statusCode int) {
	if !r.done.CompareAndSwap(false, true) {
		return
	}

	elapsed := time.Since(r.capture.durationStart).Seconds()
	r.layer.instruments.serverRequestDuration.Record(r.ctx, elapsed,
		metric.WithAttributes(r.durationAttrs(statusCode)...))

	if r.capture.bodySize >= 0 {
		r.layer.instruments.serverRequestBodySize.Record(r.ctx, r.capture.bodySize,
			metric.WithAttributes(r.bodySizeAttrs(statusCode)...))
	}

	r.decrement()
}

// Abort finishes the recorder for a request whose handler returned an error
// instead of a response. No histogram is recorded; active_requests is still
// decremented.
func (r *Recorder) Abort() {
	if !r.done.CompareAndSwap(false, true) {
		return
	}
	r.decrement()
}

// Cancel finishes the recorder for a request that never completed (the
// handler panicked or the recorder was dropped). Behaves like Abort.
func (r *Recorder) Cancel() {
	r.Abort()
}

func (r *Recorder) decrement() {
	r.layer.instruments.serverActiveRequests.Add(r.ctx, -1,
		metric.WithAttributes(r.activeRequestAttrs()...))
}

// activeRequestAttrs is the label set shared by the +1 and -1 additions.
// Status and route are unknown at entry, so they are omitted on both sides
// to keep the pair symmetric.
func (r *Recorder) activeRequestAttrs() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(httpRequestMethodLabel, r.capture.method),
		attribute.String(urlSchemeLabel, r.capture.urlScheme),
	}
}

func (r *Recorder) durationAttrs(statusCode int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(httpResponseStatusCodeLabel, strconv.Itoa(statusCode)),
		attribute.String(httpRequestMethodLabel, r.capture.method),
		attribute.String(networkProtocolNameLabel, "http"),
		attribute.String(networkProtocolVersionLabel, r.capture.protocolVersion),
		attribute.String(urlSchemeLabel, r.capture.urlScheme),
	}
	if r.capture.route != "" {
		attrs = append(attrs, attribute.String(httpRouteLabel, r.capture.route))
	}
	return attrs
}

func (r *Recorder) bodySizeAttrs(statusCode int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(httpRequestMethodLabel, r.capture.method),
		attribute.String(urlSchemeLabel, r.capture.urlScheme),
		attribute.String(httpResponseStatusCodeLabel, strconv.Itoa(statusCode)),
	}
	if r.capture.route != "" {
		attrs = append(attrs, attribute.String(httpRouteLabel, r.capture.route))
	}
	return attrs
}
