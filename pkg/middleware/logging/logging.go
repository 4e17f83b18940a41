// Package logging provides middleware that logs a structured summary of each request.
package logging

import (
	"time"

	"github.com/nimburion/httpmetrics/pkg/middleware/requestid"
	"github.com/nimburion/httpmetrics/pkg/observability/logger"
	"github.com/nimburion/httpmetrics/pkg/server/router"
)

// Log field name constants
const (
	// FieldRequestID is the request identifier field
	FieldRequestID = "request_id"
	// FieldMethod is the HTTP method field
	FieldMethod = "method"
	// FieldPath is the request path field
	FieldPath = "path"
	// FieldRoute is the matched route template field
	FieldRoute = "route"
	// FieldStatus is the HTTP status code field
	FieldStatus = "status"
	// FieldDurationMS is the request duration in milliseconds
	FieldDurationMS = "duration_ms"
	// FieldError is the error message field
	FieldError = "error"
)

// Logging creates middleware that logs one line per completed request with
// method, path, matched route, status and duration. Handler errors are
// logged and propagated unchanged.
func Logging(log logger.Logger) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			fields := []any{
				FieldMethod, req.Method,
				FieldPath, req.URL.Path,
				FieldStatus, c.Response().Status(),
				FieldDurationMS, time.Since(start).Milliseconds(),
			}
			if route := router.MatchedRoute(req.Context()); route != "" {
				fields = append(fields, FieldRoute, route)
			}
			if id := requestid.GetRequestID(req.Context()); id != "" {
				fields = append(fields, FieldRequestID, id)
			}

			if err != nil {
				fields = append(fields, FieldError, err.Error())
				log.Error("request failed", fields...)
				return err
			}

			log.Info("request completed", fields...)
			return nil
		}
	}
}
