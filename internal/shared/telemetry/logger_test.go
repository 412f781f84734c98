package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Output: &buf})
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func TestInfoWritesJSONLine(t *testing.T) {
	buf := captureLogs(t, "info")

	Info("analyzer.invoke", map[string]any{"candidate": "python3", "attempts": 2})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	for _, key := range []string{"ts", "level", "msg", "candidate", "attempts"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["msg"] != "analyzer.invoke" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
}

func TestErrorFieldsAreStrings(t *testing.T) {
	buf := captureLogs(t, "info")

	Error("analyzer.failed", map[string]any{"error": errors.New("exit status 1")})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["error"] != "exit status 1" {
		t.Fatalf("unexpected error field: %v", payload["error"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	buf := captureLogs(t, "warn")

	Debug("hidden", nil)
	Info("hidden", nil)
	Warn("shown", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"msg":"shown"`) {
		t.Fatalf("unexpected line: %s", lines[0])
	}
}
