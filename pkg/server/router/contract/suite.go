// Package contract provides a shared conformance suite run against every
// router adapter, so all adapters behave identically under the middleware
// in this module.
package contract

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimburion/httpmetrics/pkg/server/router"
)

// TestRouterContract runs the shared router conformance suite.
func TestRouterContract(t *testing.T, createRouter func() router.Router) {
	t.Helper()

	t.Run("http_methods", func(t *testing.T) {
		tests := []struct {
			method string
			add    func(r router.Router, path string, h router.HandlerFunc)
		}{
			{method: http.MethodGet, add: func(r router.Router, p string, h router.HandlerFunc) { r.GET(p, h) }},
			{method: http.MethodPost, add: func(r router.Router, p string, h router.HandlerFunc) { r.POST(p, h) }},
			{method: http.MethodPut, add: func(r router.Router, p string, h router.HandlerFunc) { r.PUT(p, h) }},
			{method: http.MethodDelete, add: func(r router.Router, p string, h router.HandlerFunc) { r.DELETE(p, h) }},
			{method: http.MethodPatch, add: func(r router.Router, p string, h router.HandlerFunc) { r.PATCH(p, h) }},
		}

		for _, tt := range tests {
			t.Run(tt.method, func(t *testing.T) {
				r := createRouter()
				tt.add(r, "/m", func(c router.Context) error {
					return c.String(http.StatusOK, tt.method)
				})

				res := perform(r, tt.method, "/m")
				if res.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d", res.Code)
				}
				if res.Body.String() != tt.method {
					t.Fatalf("expected body %q, got %q", tt.method, res.Body.String())
				}
			})
		}
	})

	t.Run("not_found", func(t *testing.T) {
		r := createRouter()
		res := perform(r, http.MethodGet, "/not-registered")
		if res.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for unregistered route, got %d", res.Code)
		}
	})

	t.Run("params", func(t *testing.T) {
		r := createRouter()
		r.GET("/users/:id", func(c router.Context) error {
			return c.String(http.StatusOK, c.Param("id"))
		})

		res := perform(r, http.MethodGet, "/users/42")
		if res.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", res.Code)
		}
		if res.Body.String() != "42" {
			t.Fatalf("expected param value 42, got %q", res.Body.String())
		}
	})

	t.Run("matched_route_attached", func(t *testing.T) {
		r := createRouter()
		var seen string
		r.GET("/users/:id", func(c router.Context) error {
			seen = router.MatchedRoute(c.Request().Context())
			return c.String(http.StatusOK, "ok")
		})

		perform(r, http.MethodGet, "/users/7")
		if seen != "/users/:id" {
			t.Fatalf("expected matched route /users/:id, got %q", seen)
		}
	})

	t.Run("middleware_order", func(t *testing.T) {
		r := createRouter()
		var order []string
		mw := func(name string) router.MiddlewareFunc {
			return func(next router.HandlerFunc) router.HandlerFunc {
				return func(c router.Context) error {
					order = append(order, name)
					return next(c)
				}
			}
		}
		r.Use(mw("global"))
		r.GET("/ordered", func(c router.Context) error {
			order = append(order, "handler")
			return c.String(http.StatusOK, "ok")
		}, mw("route"))

		perform(r, http.MethodGet, "/ordered")
		want := []string{"global", "route", "handler"}
		if len(order) != len(want) {
			t.Fatalf("expected order %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, order)
			}
		}
	})

	t.Run("middleware_sees_status", func(t *testing.T) {
		r := createRouter()
		var status int
		r.Use(func(next router.HandlerFunc) router.HandlerFunc {
			return func(c router.Context) error {
				err := next(c)
				status = c.Response().Status()
				return err
			}
		})
		r.GET("/created", func(c router.Context) error {
			return c.String(http.StatusCreated, "created")
		})

		perform(r, http.MethodGet, "/created")
		if status != http.StatusCreated {
			t.Fatalf("expected middleware to observe 201, got %d", status)
		}
	})

	t.Run("handler_error_propagates_to_middleware", func(t *testing.T) {
		r := createRouter()
		handlerErr := errors.New("boom")
		var seen error
		r.Use(func(next router.HandlerFunc) router.HandlerFunc {
			return func(c router.Context) error {
				seen = next(c)
				return seen
			}
		})
		r.GET("/fail", func(c router.Context) error {
			return handlerErr
		})

		res := perform(r, http.MethodGet, "/fail")
		if !errors.Is(seen, handlerErr) {
			t.Fatalf("expected middleware to observe handler error, got %v", seen)
		}
		if res.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500 for unhandled error, got %d", res.Code)
		}
	})
}

func perform(r router.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}
