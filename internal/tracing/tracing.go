// Package tracing wires OpenTelemetry for the ADOT Lambda layer and keeps
// span attribute keys consistent across the service.
package tracing

import (
	"context"

	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Init creates the tracer provider for the ADOT Lambda layer and registers
// the X-Ray propagator.
func Init(ctx context.Context) (*sdktrace.TracerProvider, error) {
	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		return nil, err
	}
	InitPropagator()
	return tp, nil
}

// InitPropagator registers a composite X-Ray + W3C TraceContext propagator.
func InitPropagator() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		xray.Propagator{},
		propagation.TraceContext{},
	))
}

// StartColdStartSpan begins the span covering init-time work so AWS client
// construction shows up as children of one cold start.
func StartColdStartSpan(ctx context.Context, function string) (context.Context, trace.Span) {
	tracer := otel.Tracer(function)
	return tracer.Start(ctx, "ColdStart",
		trace.WithAttributes(Function(function)),
	)
}

// StartHandlerSpan begins the per-invocation span with the given attributes.
func StartHandlerSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(name)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError records err on the span and marks the span status as error.
func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Function returns the function attribute
func Function(name string) attribute.KeyValue {
	return attribute.String("function", name)
}

// EventName returns the event_name attribute
func EventName(name string) attribute.KeyValue {
	return attribute.String("event_name", name)
}

// AccountID returns the account_id attribute
func AccountID(id string) attribute.KeyValue {
	return attribute.String("account_id", id)
}

// Outcome returns the outcome attribute
func Outcome(outcome string) attribute.KeyValue {
	return attribute.String("outcome", outcome)
}

// NotificationID returns the notification_id attribute
func NotificationID(id string) attribute.KeyValue {
	return attribute.String("notification_id", id)
}
