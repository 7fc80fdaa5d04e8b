package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEventName(t *testing.T) {
	attr := EventName("CloseAccount")

	if attr.Key != "event_name" {
		t.Errorf("expected key 'event_name', got %q", attr.Key)
	}
	if attr.Value.AsString() != "CloseAccount" {
		t.Errorf("expected value 'CloseAccount', got %q", attr.Value.AsString())
	}
}

func TestAccountID(t *testing.T) {
	attr := AccountID("123456789012")

	if attr.Key != "account_id" {
		t.Errorf("expected key 'account_id', got %q", attr.Key)
	}
	if attr.Value.AsString() != "123456789012" {
		t.Errorf("expected value '123456789012', got %q", attr.Value.AsString())
	}
}

func TestOutcome(t *testing.T) {
	attr := Outcome("notified")

	if attr.Key != "outcome" {
		t.Errorf("expected key 'outcome', got %q", attr.Key)
	}
	if attr.Value.AsString() != "notified" {
		t.Errorf("expected value 'notified', got %q", attr.Value.AsString())
	}
}

func TestNotificationID(t *testing.T) {
	attr := NotificationID("note-123")

	if attr.Key != "notification_id" {
		t.Errorf("expected key 'notification_id', got %q", attr.Key)
	}
	if attr.Value.AsString() != "note-123" {
		t.Errorf("expected value 'note-123', got %q", attr.Value.AsString())
	}
}

func TestStartHandlerSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx := context.Background()

	_, span := StartHandlerSpan(ctx, "TestHandler",
		EventName("CloseAccount"),
		AccountID("123456789012"),
	)
	span.End()

	tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if s.Name != "TestHandler" {
		t.Errorf("expected span name 'TestHandler', got %q", s.Name)
	}

	attrMap := make(map[string]string)
	for _, attr := range s.Attributes {
		attrMap[string(attr.Key)] = attr.Value.AsString()
	}

	if attrMap["event_name"] != "CloseAccount" {
		t.Errorf("expected event_name 'CloseAccount', got %q", attrMap["event_name"])
	}
	if attrMap["account_id"] != "123456789012" {
		t.Errorf("expected account_id '123456789012', got %q", attrMap["account_id"])
	}
}

func TestStartColdStartSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx := context.Background()

	_, span := StartColdStartSpan(ctx, "closure-notifier")
	span.End()

	tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if s.Name != "ColdStart" {
		t.Errorf("expected span name 'ColdStart', got %q", s.Name)
	}

	attrMap := make(map[string]string)
	for _, attr := range s.Attributes {
		attrMap[string(attr.Key)] = attr.Value.AsString()
	}
	if attrMap["function"] != "closure-notifier" {
		t.Errorf("expected function 'closure-notifier', got %q", attrMap["function"])
	}
}

func TestRecordError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx := context.Background()
	tracer := otel.Tracer("test")
	_, span := tracer.Start(ctx, "TestSpan")

	RecordError(span, errors.New("publish failed"))
	span.End()

	tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if len(s.Events) == 0 {
		t.Error("expected at least one event (error), got none")
	}
	if s.Status.Code != codes.Error {
		t.Errorf("expected error status code %d, got %d", codes.Error, s.Status.Code)
	}
}

func TestInitPropagatorSetsXRayHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())

	InitPropagator()

	propagator := otel.GetTextMapPropagator()
	carrier := propagation.MapCarrier{}

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	tracer := otel.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "test-span")
	defer span.End()

	propagator.Inject(ctx, carrier)

	if carrier.Get("X-Amzn-Trace-Id") == "" {
		t.Error("expected X-Amzn-Trace-Id header to be set, got empty string")
	}
	if carrier.Get("traceparent") == "" {
		t.Error("expected traceparent header to be set, got empty string")
	}
}
