package logging

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nimburion/httpmetrics/pkg/observability/logger"
	"github.com/nimburion/httpmetrics/pkg/server/router"
	"github.com/nimburion/httpmetrics/pkg/server/router/nethttp"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := make(map[string]any)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.log("debug", msg, args...) }

func (l *recordingLogger) Info(msg string, args ...any) { l.log("info", msg, args...) }

func (l *recordingLogger) Warn(msg string, args ...any) { l.log("warn", msg, args...) }

func (l *recordingLogger) Error(msg string, args ...any) { l.log("error", msg, args...) }

func (l *recordingLogger) With(args ...any) logger.Logger { return l }

func TestLogging_SuccessfulRequest(t *testing.T) {
	log := &recordingLogger{}

	r := nethttp.NewRouter()
	r.Use(Logging(log))
	r.GET("/users/:id", func(c router.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/1", nil))

	if len(log.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log.entries))
	}
	entry := log.entries[0]
	if entry.level != "info" {
		t.Errorf("expected info level, got %s", entry.level)
	}
	if entry.fields[FieldMethod] != http.MethodGet {
		t.Errorf("expected method GET, got %v", entry.fields[FieldMethod])
	}
	if entry.fields[FieldPath] != "/users/1" {
		t.Errorf("expected path /users/1, got %v", entry.fields[FieldPath])
	}
	if entry.fields[FieldRoute] != "/users/:id" {
		t.Errorf("expected route /users/:id, got %v", entry.fields[FieldRoute])
	}
	if entry.fields[FieldStatus] != http.StatusOK {
		t.Errorf("expected status 200, got %v", entry.fields[FieldStatus])
	}
	if _, ok := entry.fields[FieldError]; ok {
		t.Error("successful request must not carry an error field")
	}
}

func TestLogging_HandlerError(t *testing.T) {
	log := &recordingLogger{}
	handlerErr := errors.New("boom")

	var propagated error
	r := nethttp.NewRouter()
	r.Use(func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			propagated = next(c)
			return propagated
		}
	}, Logging(log))
	r.GET("/fail", func(c router.Context) error {
		return handlerErr
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	if !errors.Is(propagated, handlerErr) {
		t.Fatalf("expected error to propagate unchanged, got %v", propagated)
	}
	if len(log.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(log.entries))
	}
	entry := log.entries[0]
	if entry.level != "error" {
		t.Errorf("expected error level, got %s", entry.level)
	}
	if entry.fields[FieldError] != "boom" {
		t.Errorf("expected error field boom, got %v", entry.fields[FieldError])
	}
}
