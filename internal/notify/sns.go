package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// TopicPublisher publishes a plain-text notification to a pub/sub topic.
type TopicPublisher interface {
	Publish(ctx context.Context, subject, body string) error
}

// SNSClient is the subset of the SNS API the publisher uses.
type SNSClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher implements TopicPublisher against an SNS topic.
type SNSPublisher struct {
	client   SNSClient
	topicARN string
}

// NewSNSPublisher creates a new SNSPublisher
func NewSNSPublisher(client SNSClient, topicARN string) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
	}
}

// Publish sends the subject and body to the configured topic.
func (p *SNSPublisher) Publish(ctx context.Context, subject, body string) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	return err
}
