// Package gin provides a gin-gonic based implementation of the router.Router interface.
package gin

import (
	"net/http"
	"sync"

	ginpkg "github.com/gin-gonic/gin"

	"github.com/nimburion/httpmetrics/pkg/server/router"
)

// GinRouter implements router.Router using gin-gonic/gin.
type GinRouter struct {
	engine     *ginpkg.Engine
	mu         sync.RWMutex
	middleware []router.MiddlewareFunc
}

// NewRouter creates a new GinRouter with a bare engine (no gin default middleware).
func NewRouter() *GinRouter {
	ginpkg.SetMode(ginpkg.ReleaseMode)
	return &GinRouter{engine: ginpkg.New()}
}

// GET registers a handler for HTTP GET requests at the specified path.
func (r *GinRouter) GET(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.handle(http.MethodGet, path, handler, middleware)
}

// POST registers a handler for HTTP POST requests at the specified path.
func (r *GinRouter) POST(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.handle(http.MethodPost, path, handler, middleware)
}

// PUT registers a handler for HTTP PUT requests at the specified path.
func (r *GinRouter) PUT(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.handle(http.MethodPut, path, handler, middleware)
}

// DELETE registers a handler for HTTP DELETE requests at the specified path.
func (r *GinRouter) DELETE(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.handle(http.MethodDelete, path, handler, middleware)
}

// PATCH registers a handler for HTTP PATCH requests at the specified path.
func (r *GinRouter) PATCH(path string, handler router.HandlerFunc, middleware ...router.MiddlewareFunc) {
	r.handle(http.MethodPatch, path, handler, middleware)
}

// Use applies middleware to all routes registered after the call.
func (r *GinRouter) Use(middleware ...router.MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middleware...)
}

// ServeHTTP implements http.Handler.
func (r *GinRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func (r *GinRouter) handle(method, path string, h router.HandlerFunc, routeMiddleware []router.MiddlewareFunc) {
	r.mu.RLock()
	chain := append([]router.MiddlewareFunc{}, r.middleware...)
	r.mu.RUnlock()
	chain = append(chain, routeMiddleware...)

	r.engine.Handle(method, path, func(gc *ginpkg.Context) {
		// gin resolved the route template; expose it through the
		// request context for the metrics middleware.
		if full := gc.FullPath(); full != "" {
			gc.Request = gc.Request.WithContext(router.WithMatchedRoute(gc.Request.Context(), full))
		}

		ctx := newContext(gc)

		handler := h
		for i := len(chain) - 1; i >= 0; i-- {
			handler = chain[i](handler)
		}

		if err := handler(ctx); err != nil && !ctx.Response().Written() {
			gc.AbortWithStatus(http.StatusInternalServerError)
		}
	})
}

// ginContext implements router.Context on top of *gin.Context.
type ginContext struct {
	gc *ginpkg.Context
}

func newContext(gc *ginpkg.Context) *ginContext {
	return &ginContext{gc: gc}
}

func (c *ginContext) Request() *http.Request {
	return c.gc.Request
}

func (c *ginContext) SetRequest(r *http.Request) {
	c.gc.Request = r
}

func (c *ginContext) Response() router.ResponseWriter {
	// gin's ResponseWriter already tracks status and written state.
	return c.gc.Writer
}

func (c *ginContext) Param(name string) string {
	return c.gc.Param(name)
}

func (c *ginContext) String(code int, s string) error {
	c.gc.String(code, "%s", s)
	return nil
}

func (c *ginContext) JSON(code int, v interface{}) error {
	c.gc.JSON(code, v)
	return nil
}

func (c *ginContext) Get(key string) interface{} {
	value, _ := c.gc.Get(key)
	return value
}

func (c *ginContext) Set(key string, value interface{}) {
	c.gc.Set(key, value)
}
