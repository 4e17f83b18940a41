// Package router provides an abstraction layer for HTTP routing.
// It defines interfaces that allow pluggable router implementations (net/http, gin-gonic, gorilla/mux)
// to share the same middleware, including the OpenTelemetry metrics middleware.
package router

import (
	"context"
	"net/http"
)

// Router defines the interface for HTTP routing.
// Implementations can use different underlying routers (net/http, gin-gonic, gorilla/mux).
type Router interface {
	// HTTP method handlers
	GET(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	POST(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	PUT(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	DELETE(path string, handler HandlerFunc, middleware ...MiddlewareFunc)
	PATCH(path string, handler HandlerFunc, middleware ...MiddlewareFunc)

	// Use applies middleware to all routes
	Use(middleware ...MiddlewareFunc)

	// ServeHTTP implements http.Handler
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// HandlerFunc is the function signature for route handlers.
// It receives a Context and returns an error.
type HandlerFunc func(Context) error

// MiddlewareFunc is the function signature for middleware.
// It wraps a HandlerFunc and returns a new HandlerFunc.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Context provides access to request and response in a router-agnostic way.
type Context interface {
	// Request returns the underlying HTTP request
	Request() *http.Request

	// SetRequest sets the HTTP request (useful for middleware that modifies the request)
	SetRequest(r *http.Request)

	// Response returns the response writer
	Response() ResponseWriter

	// Param returns a URL parameter by name (e.g., /users/:id)
	Param(name string) string

	// String sends a plain text response with the given status code
	String(code int, s string) error

	// JSON sends a JSON response with the given status code
	JSON(code int, v interface{}) error

	// Get retrieves a value from the context by key
	Get(key string) interface{}

	// Set stores a value in the context by key
	Set(key string, value interface{})
}

// ResponseWriter wraps http.ResponseWriter to track response status.
type ResponseWriter interface {
	http.ResponseWriter

	// Status returns the HTTP status code of the response
	Status() int

	// Written returns whether the response has been written
	Written() bool
}

// matchedRouteKey is the context key carrying the matched route template.
type matchedRouteKey struct{}

// WithMatchedRoute returns a context carrying the route template the router
// matched for the current request (e.g. /users/:id). Adapters call this
// before dispatching so middleware can label metrics with the template
// instead of the raw, high-cardinality path.
func WithMatchedRoute(ctx context.Context, pattern string) context.Context {
	if pattern == "" {
		return ctx
	}
	return context.WithValue(ctx, matchedRouteKey{}, pattern)
}

// MatchedRoute returns the route template attached to the context, or an
// empty string when no route was matched.
func MatchedRoute(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if pattern, ok := ctx.Value(matchedRouteKey{}).(string); ok {
		return pattern
	}
	return ""
}
