package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RedactsSensitiveKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("submitted", "access_token", "abc", "recipient", "a@b.c", "category", "traffic")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["access_token"] != "[REDACTED]" {
		t.Fatalf("expected access_token redacted, got %v", fields["access_token"])
	}
	if fields["recipient"] != "[REDACTED]" {
		t.Fatalf("expected recipient redacted, got %v", fields["recipient"])
	}
	if fields["category"] != "traffic" {
		t.Fatalf("unexpected category: %v", fields["category"])
	}
}

func TestLogger_WithKeepsOddTrailingValue(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected sanitized kvs: %v", out)
	}
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"prod", "dev", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error: %v", mode, err)
		}
		l.Debug("hello", "mode", mode)
	}
}
