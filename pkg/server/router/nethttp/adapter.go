// Package nethttp provides a net/http based implementation of the router.Router interface.
// It is the zero-dependency fallback adapter; use the gin or gorilla adapters when the
// application already runs one of those frameworks.
package nethttp

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/nimburion/httpmetrics/pkg/server/router"
)

// NetHTTPRouter implements router.Router with a small :param pattern matcher.
type NetHTTPRouter struct {
	mu         sync.RWMutex
	routes     []route
	middleware []router.MiddlewareFunc
}

type route struct {
	method  string
	pattern string
	handler router.HandlerFunc
	chain   []router.MiddlewareFunc
}

// NewRouter creates a new NetHTTPRouter.
func NewRouter() *NetHTTPRouter {
	return &NetHTTPRouter{}
}

// GET registers a GET route.
func (r *NetHTTPRouter) GET(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodGet, path, handler, middleware)
}

// POST registers a POST route.
func (r *NetHTTPRouter) POST(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodPost, path, handler, middleware)
}

// PUT registers a PUT route.
func (r *NetHTTPRouter) PUT(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodPut, path, handler, middleware)
}

// DELETE registers a DELETE route.
func (r *NetHTTPRouter) DELETE(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodDelete, path, handler, middleware)
}

// PATCH registers a PATCH route.
func (r *NetHTTPRouter) PATCH(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.addRoute(http.MethodPatch, path, handler, middleware)
}

// Use applies middleware to all routes registered after the call.
func (r *NetHTTPRouter) Use(middleware ...router.MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middleware...)
}

// ServeHTTP implements http.Handler.
func (r *NetHTTPRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.routes {
		params, ok := matchRoute(rt.pattern, req.URL.Path)
		if !ok || rt.method != req.Method {
			continue
		}

		// Attach the matched template before dispatch so middleware
		// sees it through the request context.
		req = req.WithContext(router.WithMatchedRoute(req.Context(), rt.pattern))

		ctx := newContext(w, req, params)

		handler := rt.handler
		for i := len(rt.chain) - 1; i >= 0; i-- {
			handler = rt.chain[i](handler)
		}

		if err := handler(ctx); err != nil && !ctx.Response().Written() {
			http.Error(ctx.Response(), err.Error(), http.StatusInternalServerError)
		}
		return
	}

	http.NotFound(w, req)
}

func (r *NetHTTPRouter) addRoute(method, path string, handler router.HandlerFunc, middleware []router.MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chain := append([]router.MiddlewareFunc{}, r.middleware...)
	chain = append(chain, middleware...)

	r.routes = append(r.routes, route{
		method:  method,
		pattern: path,
		handler: handler,
		chain:   chain,
	})
}

// matchRoute checks if a pattern matches a path and extracts :param values.
func matchRoute(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range patternParts {
		switch {
		case strings.HasPrefix(part, ":"):
			params[part[1:]] = pathParts[i]
		case part != pathParts[i]:
			return nil, false
		}
	}

	return params, true
}

// netHTTPContext implements router.Context.
type netHTTPContext struct {
	request  *http.Request
	response router.ResponseWriter
	params   map[string]string
	store    map[string]interface{}
	mu       sync.RWMutex
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *netHTTPContext {
	return &netHTTPContext{
		request:  r,
		response: router.WrapResponseWriter(w),
		params:   params,
		store:    make(map[string]interface{}),
	}
}

func (c *netHTTPContext) Request() *http.Request {
	return c.request
}

func (c *netHTTPContext) SetRequest(r *http.Request) {
	c.request = r
}

func (c *netHTTPContext) Response() router.ResponseWriter {
	return c.response
}

func (c *netHTTPContext) Param(name string) string {
	return c.params[name]
}

func (c *netHTTPContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *netHTTPContext) JSON(code int, v interface{}) error {
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *netHTTPContext) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store[key]
}

func (c *netHTTPContext) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
}
