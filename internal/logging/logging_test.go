package logging

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "bleuboard.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogOperation("create", "abc", nil)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[STORE] op=CREATE id=abc status=ok") {
		t.Fatalf("expected LogOperation content, got: %s", content)
	}
}

func TestBuildOperationMessage(t *testing.T) {
	msg := buildOperationMessage(" delete ", " ", errors.New("boom"))
	if !strings.Contains(msg, "op=DELETE") {
		t.Fatalf("expected uppercased op, got: %s", msg)
	}
	if !strings.Contains(msg, "id=-") {
		t.Fatalf("expected placeholder id, got: %s", msg)
	}
	if !strings.Contains(msg, `status=error error="boom"`) {
		t.Fatalf("expected error status, got: %s", msg)
	}
	if got := buildOperationMessage("", "x", nil); !strings.Contains(got, "op=UNKNOWN") {
		t.Fatalf("expected unknown op, got: %s", got)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
	if got := formatPayload(map[string]any{"ok": true}); got != `{"ok":true}` {
		t.Fatalf("map payload: %s", got)
	}
}

func TestInitFileOnlyDiscardsWithoutPath(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := InitFileOnly(""); err != nil {
		t.Fatalf("InitFileOnly error: %v", err)
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected log output discarded, got: %s", buf.String())
	}
}
