package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"mediastore/internal/media"
)

func TestConsoleHandlerPullsComponentForward(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.With(String(FieldComponent, "reconcile")).Info("scan complete", Int("orphans", 2))

	line := buf.String()
	if !strings.Contains(line, "[reconcile]") {
		t.Fatalf("expected bracketed component, got %q", line)
	}
	if !strings.Contains(line, "orphans=2") {
		t.Fatalf("expected attr rendering, got %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("hidden")
	logger.Warn("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info record should have been suppressed: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestWithContextAddsEngineFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	ctx := media.WithOwnerID(context.Background(), "u1")
	ctx = media.WithClass(ctx, media.ClassPhotos)
	ctx = media.WithRequestID(ctx, "req-9")

	WithContext(ctx, logger).Info("working")

	line := buf.String()
	for _, want := range []string{"owner_id=u1", "asset_class=photos", "correlation_id=req-9"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger == nil {
		t.Fatal("NewNop returned nil")
	}
	logger.Error("should not panic")
}
