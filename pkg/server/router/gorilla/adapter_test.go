package gorilla

import (
	"testing"

	"github.com/nimburion/httpmetrics/pkg/server/router"
	"github.com/nimburion/httpmetrics/pkg/server/router/contract"
)

func TestGorillaRouterContract(t *testing.T) {
	contract.TestRouterContract(t, func() router.Router {
		return NewRouter()
	})
}

func TestMuxPathConversion(t *testing.T) {
	tests := []struct {
		pattern string
		mux     string
	}{
		{pattern: "/users/:id", mux: "/users/{id}"},
		{pattern: "/users/:id/posts/:postID", mux: "/users/{id}/posts/{postID}"},
		{pattern: "/static", mux: "/static"},
		{pattern: "/", mux: "/"},
	}

	for _, tt := range tests {
		if got := toMuxPath(tt.pattern); got != tt.mux {
			t.Errorf("toMuxPath(%q) = %q, want %q", tt.pattern, got, tt.mux)
		}
		if got := fromMuxPath(tt.mux); got != tt.pattern {
			t.Errorf("fromMuxPath(%q) = %q, want %q", tt.mux, got, tt.pattern)
		}
	}
}
