package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in log directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")

		logger, err := NewLogger(dir, LevelDebug, DefaultRotation())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		logger.Info("hello")

		data, err := os.ReadFile(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatalf("reading log file: %v", err)
		}
		entries := decodeLines(t, string(data))
		if len(entries) != 1 || entries[0]["msg"] != "hello" {
			t.Errorf("unexpected entries: %v", entries)
		}
	})

	t.Run("writes to stderr when logDir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo, DefaultRotation())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.file != nil {
			t.Error("expected file to be nil when logDir is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() on stderr logger = %v", err)
		}
	})
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{LevelDebug, 4},
		{LevelInfo, 3},
		{LevelWarn, 2},
		{LevelError, 1},
		{"bogus", 3},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWriterLogger(&buf, tt.level)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			if got := len(decodeLines(t, buf.String())); got != tt.want {
				t.Errorf("level %s logged %d entries, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelDebug).WithHost("host-1").WithComponent("panel/general")

	logger.Debug("tab route registered", "route", "panel/general/style")

	entries := decodeLines(t, buf.String())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["component"] != "panel/general" {
		t.Errorf("component = %v, want panel/general", entry["component"])
	}
	if entry["host_id"] != "host-1" {
		t.Errorf("host_id = %v, want host-1", entry["host_id"])
	}
	if entry["route"] != "panel/general/style" {
		t.Errorf("route = %v, want panel/general/style", entry["route"])
	}
}

func TestWith_IgnoresNonStringKeys(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf, LevelInfo)

	if base.With() != base {
		t.Error("With() without args should return the same logger")
	}

	logger := base.With("tab", "style", 42, "ignored")
	logger.Info("x")

	entry := decodeLines(t, buf.String())[0]
	if entry["tab"] != "style" {
		t.Errorf("tab = %v, want style", entry["tab"])
	}
	if _, ok := entry["42"]; ok {
		t.Error("non-string key should be skipped")
	}
}

func TestChildLoggerDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWriterLogger(&buf, LevelInfo)
	_ = parent.WithComponent("panel/a")

	parent.Info("parent")

	entry := decodeLines(t, buf.String())[0]
	if _, ok := entry["component"]; ok {
		t.Error("parent logger should not carry child attributes")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 || levels[0] != LevelDebug || levels[3] != LevelError {
		t.Errorf("ValidLevels() = %v", levels)
	}
}
