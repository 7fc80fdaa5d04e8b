package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel"

	"github.com/orgwatch/account-closure-notifier/internal/config"
	"github.com/orgwatch/account-closure-notifier/internal/event"
	"github.com/orgwatch/account-closure-notifier/internal/notify"
	"github.com/orgwatch/account-closure-notifier/internal/tracing"
)

var (
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
)

// Outcome is the terminal state of one invocation.
type Outcome string

const (
	// OutcomeIgnored means the event was not an account-closure action.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeNotified means dispatch was attempted on the enabled channels,
	// not necessarily that every channel succeeded.
	OutcomeNotified Outcome = "notified"
)

// Dispatcher fans a message out to the notification channels
type Dispatcher interface {
	Dispatch(ctx context.Context, msg notify.Message) notify.Result
}

// Dependencies for handler (injectable for testing)
type Dependencies struct {
	Dispatcher   Dispatcher
	SlackEnabled bool
}

var deps *Dependencies

// handler processes one CloudTrail account-management event delivered via
// EventBridge. Extraction and formatting errors fail the invocation; dispatch
// errors are logged and swallowed.
func handler(ctx context.Context, evt events.CloudWatchEvent) (Outcome, error) {
	ctx, span := tracing.StartHandlerSpan(ctx, "AccountClosureHandler")
	defer span.End()

	detail, err := event.Extract(evt.Detail)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to extract event detail",
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return "", fmt.Errorf("failed to extract event detail: %w", err)
	}

	span.SetAttributes(
		tracing.EventName(detail.EventName),
		tracing.AccountID(detail.AccountID),
	)

	if !event.IsClosureAction(detail.EventName) {
		logger.InfoContext(ctx, "Event is not associated with a CloseAccount/RemoveAccountFromOrganization API call",
			slog.String("event_name", detail.EventName),
		)
		span.SetAttributes(tracing.Outcome(string(OutcomeIgnored)))
		return OutcomeIgnored, nil
	}

	logger.InfoContext(ctx, "Received closure event",
		slog.String("event_name", detail.EventName),
		slog.String("account_id", detail.AccountID),
	)

	msg, err := notify.NewMessage(detail)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build notification message",
			slog.String("event_name", detail.EventName),
			slog.String("account_id", detail.AccountID),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return "", fmt.Errorf("failed to build notification message: %w", err)
	}

	logger.InfoContext(ctx, "Sending notifications",
		slog.String("event_name", detail.EventName),
		slog.String("account_id", detail.AccountID),
		slog.Bool("slack_enabled", deps.SlackEnabled),
	)

	result := deps.Dispatcher.Dispatch(ctx, msg)
	span.SetAttributes(tracing.NotificationID(result.NotificationID))
	logDispatchResult(ctx, detail, result)

	span.SetAttributes(tracing.Outcome(string(OutcomeNotified)))
	return OutcomeNotified, nil
}

// logDispatchResult reports each channel's outcome. Channel failures are
// best-effort by contract and never fail the invocation.
func logDispatchResult(ctx context.Context, detail event.Detail, result notify.Result) {
	if result.TopicErr != nil {
		logger.ErrorContext(ctx, "Failed to send SNS notification",
			slog.String("event_name", detail.EventName),
			slog.String("account_id", detail.AccountID),
			slog.String("notification_id", result.NotificationID),
			slog.String("error", result.TopicErr.Error()),
		)
	} else {
		logger.InfoContext(ctx, "Successfully sent SNS notification",
			slog.String("event_name", detail.EventName),
			slog.String("account_id", detail.AccountID),
			slog.String("notification_id", result.NotificationID),
		)
	}

	if !result.WebhookAttempted {
		return
	}
	if result.WebhookErr != nil {
		logger.ErrorContext(ctx, "Failed to send Slack notification",
			slog.String("event_name", detail.EventName),
			slog.String("account_id", detail.AccountID),
			slog.String("notification_id", result.NotificationID),
			slog.String("error", result.WebhookErr.Error()),
		)
	} else {
		logger.DebugContext(ctx, "Successfully sent Slack notification",
			slog.String("event_name", detail.EventName),
			slog.String("account_id", detail.AccountID),
			slog.String("notification_id", result.NotificationID),
		)
	}
}

func main() {
	ctx := context.Background()

	// Initialize tracer provider
	tp, err := tracing.Init(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider",
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	otel.SetTracerProvider(tp)

	// Create cold start span - all init AWS calls become children
	ctx, coldStartSpan := tracing.StartColdStartSpan(ctx, "closure-notifier")
	defer coldStartSpan.End()

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		logger.Error("FATAL: Invalid configuration",
			slog.String("error", err.Error()),
		)
		panic(err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to load AWS config",
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	snsClient := sns.NewFromConfig(awsCfg)

	deps = &Dependencies{
		Dispatcher: &notify.Dispatcher{
			Topic:        notify.NewSNSPublisher(snsClient, cfg.TopicARN),
			Webhook:      notify.NewSlackWebhook(cfg.SlackEndpoint),
			SlackEnabled: cfg.SlackNotification,
		},
		SlackEnabled: cfg.SlackNotification,
	}

	lambda.Start(otellambda.InstrumentHandler(handler, xrayconfig.WithRecommendedOptions(tp)...))
}
