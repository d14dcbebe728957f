package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("REPORTS_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when REPORTS_DEBUG is empty")
	}

	t.Setenv("REPORTS_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when REPORTS_DEBUG is set")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	t.Setenv("REPORTS_DEBUG", "")
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.Debug("hidden")
	logger.Info("search finished", "rows", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "search finished" {
		t.Errorf("msg = %v, want %q", entry["msg"], "search finished")
	}
	if entry["rows"] != float64(3) {
		t.Errorf("rows = %v, want 3", entry["rows"])
	}
}

func TestNew_DebugOverride(t *testing.T) {
	t.Setenv("REPORTS_DEBUG", "1")
	var buf bytes.Buffer
	logger := New("error", "text", &buf)

	logger.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug line should be written when REPORTS_DEBUG is set, got %q", buf.String())
	}
}
