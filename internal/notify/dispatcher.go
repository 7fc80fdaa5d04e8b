package notify

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/orgwatch/account-closure-notifier/internal/tracing"
)

const tracerName = "closure-notifier"

// Result records the per-channel outcome of one dispatch. Channel failures
// are carried here as values rather than raised: the two channels are
// independent and best-effort, and the caller decides what to log.
type Result struct {
	NotificationID   string
	TopicErr         error
	WebhookAttempted bool
	WebhookErr       error
}

// Dispatcher fans one message out to the pub/sub topic and, when enabled, the
// chat webhook. Failure of one channel never blocks the other.
type Dispatcher struct {
	Topic        TopicPublisher
	Webhook      WebhookPoster
	SlackEnabled bool
}

// Dispatch publishes to the topic unconditionally, then posts to the webhook
// if chat notification is enabled. It never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Result {
	tracer := otel.Tracer(tracerName)
	result := Result{NotificationID: uuid.NewString()}

	topicCtx, span := tracer.Start(ctx, "PublishToTopic",
		trace.WithAttributes(tracing.NotificationID(result.NotificationID)))
	result.TopicErr = d.Topic.Publish(topicCtx, msg.Subject(), msg.Body())
	if result.TopicErr != nil {
		tracing.RecordError(span, result.TopicErr)
	}
	span.End()

	if d.SlackEnabled {
		webhookCtx, span := tracer.Start(ctx, "PostToWebhook",
			trace.WithAttributes(tracing.NotificationID(result.NotificationID)))
		result.WebhookAttempted = true
		result.WebhookErr = d.Webhook.Post(webhookCtx, msg.Blocks())
		if result.WebhookErr != nil {
			tracing.RecordError(span, result.WebhookErr)
		}
		span.End()
	}

	return result
}
