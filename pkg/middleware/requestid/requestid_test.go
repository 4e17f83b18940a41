package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimburion/httpmetrics/pkg/middleware"
	"github.com/nimburion/httpmetrics/pkg/server/router"
	"github.com/nimburion/httpmetrics/pkg/server/router/nethttp"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := nethttp.NewRouter()
	r.Use(RequestID())

	var seen string
	r.GET("/", func(c router.Context) error {
		seen = GetRequestID(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	})

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a generated request ID in the context")
	}
	if got := res.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("expected response header %q, got %q", seen, got)
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	r := nethttp.NewRouter()
	r.Use(RequestID())

	var seen string
	r.GET("/", func(c router.Context) error {
		seen = GetRequestID(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "incoming-id")
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	if seen != "incoming-id" {
		t.Errorf("expected existing request ID to be preserved, got %q", seen)
	}
	if got := res.Header().Get(RequestIDHeader); got != "incoming-id" {
		t.Errorf("expected response header incoming-id, got %q", got)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
	if got := GetRequestID(nil); got != "" {
		t.Errorf("expected empty request ID for nil context, got %q", got)
	}
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, 42)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty request ID for non-string value, got %q", got)
	}
}
