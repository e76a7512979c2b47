package telemetry

import (
	"context"
	"os"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestProviderRecordsSpansWithResource(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	tp, err := NewProvider(ctx, sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	defer tp.Shutdown(ctx)

	_, span := tp.Tracer("cityhall/test").Start(ctx, "turn.resolve")
	span.SetAttributes(attribute.String("action", "docks.dredge"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if spans[0].Name() != "turn.resolve" {
		t.Errorf("span name = %q", spans[0].Name())
	}

	found := false
	for _, kv := range spans[0].Resource().Attributes() {
		if kv.Key == "service.name" && kv.Value.AsString() == serviceName {
			found = true
		}
	}
	if !found {
		t.Error("service.name missing from span resource")
	}
}

func TestNoopTracerDoesNotRecord(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "game.init")
	if span.IsRecording() {
		t.Error("noop span should not record")
	}
	span.End()
}

func TestConfigureEnvFillsUnsetVariables(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-team=existing")
	t.Setenv("CITYHALL_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("CITYHALL_OTLP_HEADERS", "x-team=ignored")

	ConfigureEnv()

	if got := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); got != "http://collector:4318" {
		t.Errorf("endpoint = %q", got)
	}
	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != "x-team=existing" {
		t.Errorf("headers = %q, want the value already set", got)
	}
	if !Enabled() {
		t.Error("Enabled() = false with an endpoint set")
	}
}

func TestSetupWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("CITYHALL_OTLP_ENDPOINT", "")

	ConfigureEnv()
	if Enabled() {
		t.Fatal("Enabled() = true without an endpoint")
	}
	shutdown, err := Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}
