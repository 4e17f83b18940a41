package logger

import (
	"testing"
)

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "defaults", cfg: DefaultConfig()},
		{name: "debug json", cfg: Config{Level: DebugLevel, Format: JSONFormat}},
		{name: "warn text", cfg: Config{Level: WarnLevel, Format: TextFormat}},
		{name: "error level", cfg: Config{Level: ErrorLevel, Format: JSONFormat}},
		{name: "unknown level falls back to info", cfg: Config{Level: "verbose", Format: JSONFormat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewZapLogger(tt.cfg)
			if err != nil {
				t.Fatalf("NewZapLogger returned error: %v", err)
			}
			if l == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestWithReturnsChildLogger(t *testing.T) {
	l := NewNop()
	child := l.With("component", "test")
	if child == nil {
		t.Fatal("expected a child logger")
	}
	// Must not panic with structured pairs.
	child.Debug("debug", "k", "v")
	child.Info("info", "k", "v")
	child.Warn("warn", "k", "v")
	child.Error("error", "k", "v")
}
