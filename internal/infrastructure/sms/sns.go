// Package sms sends well-wish text messages through AWS SNS.
package sms

import (
	"bdaywisher/internal/pkg/logger"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Publisher is the part of the SNS client used to send SMS.
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Sender sends transactional SMS via SNS.
type Sender struct {
	client Publisher
	log    logger.Logger
}

// NewSender loads the default AWS configuration for region.
func NewSender(ctx context.Context, region string, log logger.Logger) (*Sender, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load default AWS config for SNS: %w", err)
	}
	return NewSenderWithClient(sns.NewFromConfig(awsCfg), log), nil
}

// NewSenderWithClient wraps an existing SNS client.
func NewSenderWithClient(client Publisher, log logger.Logger) *Sender {
	return &Sender{client: client, log: log}
}

// Send publishes message to an E.164 phone number and returns the SNS message id.
func (s *Sender) Send(ctx context.Context, phoneNumber, message string) (string, error) {
	if phoneNumber == "" {
		return "", errors.New("sms: missing phone number")
	}
	if message == "" {
		return "", errors.New("sms: missing message")
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	if err != nil {
		return "", fmt.Errorf("sns publish failed: %w", err)
	}

	id := aws.ToString(out.MessageId)
	s.log.Info(fmt.Sprintf("SMS sent via SNS to %s (message %s)", phoneNumber, id))
	return id, nil
}
