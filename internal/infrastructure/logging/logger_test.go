package logging

import (
	"log/slog"
	"testing"

	"github.com/fennwald/huecore/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewNeverReturnsNil(t *testing.T) {
	cfgs := []config.LoggingConfig{
		{},
		{Level: "debug", Format: "text", Output: "stdout"},
		{Level: "bogus", Format: "bogus", Output: "bogus"},
	}
	for _, cfg := range cfgs {
		if log := New(cfg, "test"); log == nil || log.Logger == nil {
			t.Errorf("New(%+v) returned a nil logger", cfg)
		}
	}
}

func TestWithAddsAttributes(t *testing.T) {
	log := Default()
	child := log.With("component", "dispatcher")
	if child == nil || child.Logger == log.Logger {
		t.Error("With() should return a derived logger")
	}
}
