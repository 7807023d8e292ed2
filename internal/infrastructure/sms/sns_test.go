package sms

import (
	"bdaywisher/internal/pkg/logger"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	input *sns.PublishInput
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSender_Send(t *testing.T) {
	pub := &fakePublisher{}
	s := NewSenderWithClient(pub, logger.NewNop())

	id, err := s.Send(context.Background(), "+919876543210", "Happy Birthday 😊😊😊")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "+919876543210", aws.ToString(pub.input.PhoneNumber))
	assert.Equal(t, "Happy Birthday 😊😊😊", aws.ToString(pub.input.Message))
	assert.Equal(t, "Transactional", aws.ToString(pub.input.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue))
}

func TestSender_Validation(t *testing.T) {
	pub := &fakePublisher{}
	s := NewSenderWithClient(pub, logger.NewNop())

	_, err := s.Send(context.Background(), "", "hi")
	assert.Error(t, err)
	_, err = s.Send(context.Background(), "+91900", "")
	assert.Error(t, err)
	assert.Nil(t, pub.input)
}

func TestSender_PublishError(t *testing.T) {
	s := NewSenderWithClient(&fakePublisher{err: errors.New("throttled")}, logger.NewNop())
	_, err := s.Send(context.Background(), "+919876543210", "hi")
	assert.ErrorContains(t, err, "throttled")
}
