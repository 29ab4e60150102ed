package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestDisabledSpansAreNoop(t *testing.T) {
	if err := Init(Options{Enabled: false}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ctx, span := StartSpan(context.Background(), "noop")
	span.End()
	if _, _, ok := IDs(ctx); ok {
		t.Error("disabled tracing should not yield span IDs")
	}
}

func TestEnabledSpansAreExported(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Options{Enabled: true, Writer: &buf, Version: "test"}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	ctx, span := StartSpan(context.Background(), "analytics.closed_positions", attribute.Int("trades", 4))
	traceID, spanID, ok := IDs(ctx)
	if !ok || traceID == "" || spanID == "" {
		t.Errorf("IDs: got %q %q %v", traceID, spanID, ok)
	}
	span.End()

	if err := Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), "analytics.closed_positions") {
		t.Errorf("exported output missing span name: %s", buf.String())
	}
	if Enabled() {
		t.Error("Enabled should be false after Shutdown")
	}
}
