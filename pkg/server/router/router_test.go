package router

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestMatchedRoute_RoundTrip(t *testing.T) {
	ctx := WithMatchedRoute(context.Background(), "/users/:id")
	if got := MatchedRoute(ctx); got != "/users/:id" {
		t.Errorf("expected /users/:id, got %q", got)
	}
}

func TestMatchedRoute_Absent(t *testing.T) {
	if got := MatchedRoute(context.Background()); got != "" {
		t.Errorf("expected empty route, got %q", got)
	}
	if got := MatchedRoute(nil); got != "" {
		t.Errorf("expected empty route for nil context, got %q", got)
	}
}

func TestMatchedRoute_EmptyPatternLeavesContextUnchanged(t *testing.T) {
	base := context.Background()
	ctx := WithMatchedRoute(base, "")
	if ctx != base {
		t.Error("empty pattern should not attach a value")
	}
	if got := MatchedRoute(ctx); got != "" {
		t.Errorf("expected empty route, got %q", got)
	}
}

func TestWrapResponseWriter_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	w := WrapResponseWriter(rec)

	if w.Written() {
		t.Error("writer should start unwritten")
	}
	if w.Status() != 200 {
		t.Errorf("unwritten status should read as 200, got %d", w.Status())
	}

	if _, err := w.Write([]byte("ok")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !w.Written() {
		t.Error("writer should be marked written after Write")
	}
	if w.Status() != 200 {
		t.Errorf("expected status 200, got %d", w.Status())
	}
}

func TestWrapResponseWriter_FirstHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := WrapResponseWriter(rec)

	w.WriteHeader(404)
	w.WriteHeader(500)

	if w.Status() != 404 {
		t.Errorf("expected status 404, got %d", w.Status())
	}
	if rec.Code != 404 {
		t.Errorf("expected recorded status 404, got %d", rec.Code)
	}
}

func TestWrapResponseWriter_Idempotent(t *testing.T) {
	rec := httptest.NewRecorder()
	w := WrapResponseWriter(rec)
	if ww := WrapResponseWriter(w); ww != w {
		t.Error("wrapping an already-wrapped writer should be a no-op")
	}
}
