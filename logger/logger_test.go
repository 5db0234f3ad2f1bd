package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	return &Logger{logger: zerolog.New(buf)}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf).WithComponent("timestamps")
	log.Info("batch classified")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if event[FieldComponent] != "timestamps" {
		t.Errorf("expected component field, got %v", event)
	}
	if event["message"] != "batch classified" {
		t.Errorf("expected message, got %v", event)
	}
}

func TestFieldsHelper(t *testing.T) {
	m := Fields("chapter_id", 3, "batch", 1)
	if m["chapter_id"] != 3 || m["batch"] != 1 {
		t.Errorf("unexpected map: %v", m)
	}

	// Odd trailing value is ignored.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("expected 1 entry, got %v", m)
	}

	// Non-string key is skipped.
	m = Fields(42, "x")
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestEventFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	log.Warn("quiz block dropped", Fields(FieldChapterID, 2, FieldDropReason, "missing answer"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if event[FieldDropReason] != "missing answer" {
		t.Errorf("expected drop_reason field, got %v", event)
	}
	if event["level"] != "warn" {
		t.Errorf("expected warn level, got %v", event)
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere.
	Nop().WithComponent("x").Error("ignored")
}
