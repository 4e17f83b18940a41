// Package metrics provides HTTP middleware that instruments request handling
// with OpenTelemetry metrics following the HTTP server semantic conventions.
//
// Per request it records a duration histogram and a request-body-size
// histogram, and tracks in-flight work with an up/down counter. The
// instruments are created once from a caller-supplied meter:
//
//	layer, err := metrics.NewBuilder().WithMeter(meter).Build()
//	if err != nil {
//	    return err
//	}
//	r := nethttp.NewRouter()
//	r.Use(layer.Middleware())
//
// The middleware never alters request semantics: handler errors pass through
// unchanged and recording is best-effort.
package metrics

import (
	"github.com/nimburion/httpmetrics/pkg/server/router"
)

// Layer owns the instrument set. One Layer is shared by every request
// flowing through the handlers it wraps; it is immutable after Build and
// safe for concurrent use.
type Layer struct {
	instruments instrumentSet
}

// Middleware returns the layer as a router.MiddlewareFunc for use with
// Router.Use.
func (l *Layer) Middleware() router.MiddlewareFunc {
	return l.Apply
}

// Apply wraps a single handler with the instrumentation. The wrapper itself
// does not touch instruments; all recording happens through the per-request
// Recorder.
//
// Exactly one active_requests decrement happens per request: on handler
// success it is part of Complete, on handler error part of Abort, and on
// panic the deferred Cancel runs while the panic unwinds, before it is
// re-raised to the surrounding server.
func (l *Layer) Apply(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		rec := l.Begin(c.Request())
		defer rec.Cancel()

		if err := next(c); err != nil {
			rec.Abort()
			return err
		}

		rec.Complete(c.Response().Status())
		return nil
	}
}
