package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Component: ComponentService, Output: &buf}), &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.WithComponent(ComponentStorage).Info("hello", FieldSaleID, 3)
	out := buf.String()
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "sale_id=3") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelWarn)
	l.Info("hidden")
	l.Debug("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	l, _ := newBufferLogger(slog.LevelInfo)
	ctx := WithContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("expected logger from context")
	}
	if got := FromContext(context.Background()).Component(); got != "unknown" {
		t.Fatalf("expected fallback component, got %q", got)
	}
}

func TestStructuredLogger(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	sl := NewStructuredLogger(l)
	ctx := context.Background()

	sl.LogSeeded(ctx, 100, "sqlite", 77, 3)
	for _, want := range []string{"operation=seed", "sale_count=100", "backend=sqlite", "seed=77"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in %q", want, buf.String())
		}
	}

	buf.Reset()
	sl.LogReportBuilt(ctx, "run-1", 10, 3, 5, "TV", 12, 4)
	out := buf.String()
	for _, want := range []string{"run_id=run-1", "sale_count=10", "top_product=TV", "top_quantity=12", "success=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	sl.LogError(ctx, "boom", errors.New("bad data"), ComponentReport, OpAggregate, nil)
	if !strings.Contains(buf.String(), `error="bad data"`) || !strings.Contains(buf.String(), "level=ERROR") {
		t.Fatalf("unexpected error line: %q", buf.String())
	}
}
