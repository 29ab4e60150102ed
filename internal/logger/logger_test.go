package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldsAreSortedAndTyped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	defer func() { _ = Init("info", "console", nil) }()

	Info("trades loaded", Fields{"rows": 12, "path": "trades.csv", "err": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Message != "trades loaded" {
		t.Errorf("message: got %q", e.Message)
	}
	var keys []string
	for _, f := range e.Context {
		keys = append(keys, f.Key)
	}
	if strings.Join(keys, ",") != "err,path,rows" {
		t.Errorf("field order: got %v", keys)
	}
	if e.ContextMap()["err"] != "boom" {
		t.Errorf("err field: got %v", e.ContextMap()["err"])
	}
}

func TestInitJSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("warn", "json", &buf); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer func() { _ = Init("info", "console", nil) }()

	Info("dropped")
	Warn("kept", Fields{"days": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines: got %d (%q), want 1", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("json line: %v", err)
	}
	if entry["message"] != "kept" || entry["level"] != "warn" {
		t.Errorf("entry: got %v", entry)
	}
	if entry["days"] != float64(3) {
		t.Errorf("days: got %v", entry["days"])
	}
}

func TestSetLogLevelInvalid(t *testing.T) {
	if err := SetLogLevel("chatty"); err == nil {
		t.Error("SetLogLevel should reject unknown levels")
	}
	if err := SetLogLevel("DEBUG"); err != nil {
		t.Errorf("SetLogLevel(DEBUG): %v", err)
	}
	_ = SetLogLevel("info")
}
