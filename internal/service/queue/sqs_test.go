package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

type mockSQSAPI struct {
	mock.Mock
}

func (m *mockSQSAPI) SendMessage(ctx context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	return &sqs.SendMessageOutput{}, args.Error(0)
}

func (m *mockSQSAPI) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.ReceiveMessageOutput), args.Error(1)
}

func (m *mockSQSAPI) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, params)
	return &sqs.DeleteMessageOutput{}, args.Error(0)
}

func newTestService(api API) *SQSService {
	return NewSQSService(api, &config.SQSConfig{
		IndexQueueURL:   "http://localhost:4566/000000000000/index",
		ArchiveQueueURL: "http://localhost:4566/000000000000/archive",
	})
}

func decodeBody(t *testing.T, in *sqs.SendMessageInput) Message {
	t.Helper()
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &msg))
	return msg
}

func TestSendIndexMessage(t *testing.T) {
	api := new(mockSQSAPI)
	svc := newTestService(api)
	ctx := context.Background()

	event := &domain.SecurityEvent{ID: "evt-1", PrincipalID: "user-42", OccurredAt: time.Now().UTC()}

	var sent *sqs.SendMessageInput
	api.On("SendMessage", ctx, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*sqs.SendMessageInput)
	}).Return(nil)

	require.NoError(t, svc.SendIndexMessage(ctx, event))

	assert.Equal(t, svc.IndexQueueURL(), aws.ToString(sent.QueueUrl))
	msg := decodeBody(t, sent)
	assert.Equal(t, MessageTypeIndex, msg.Type)
	require.Len(t, msg.Events, 1)
	assert.Equal(t, "evt-1", msg.Events[0].ID)
}

func TestSendArchiveMessage(t *testing.T) {
	api := new(mockSQSAPI)
	svc := newTestService(api)
	ctx := context.Background()
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var sent *sqs.SendMessageInput
	api.On("SendMessage", ctx, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*sqs.SendMessageInput)
	}).Return(nil)

	require.NoError(t, svc.SendArchiveMessage(ctx, before))

	assert.Equal(t, svc.ArchiveQueueURL(), aws.ToString(sent.QueueUrl))
	msg := decodeBody(t, sent)
	assert.Equal(t, MessageTypeArchive, msg.Type)
	assert.True(t, msg.BeforeDate.Equal(before))
	assert.Empty(t, msg.Events)
}

func TestSendBulkIndexMessage_EmptyIsNoop(t *testing.T) {
	api := new(mockSQSAPI)
	svc := newTestService(api)

	require.NoError(t, svc.SendBulkIndexMessage(context.Background(), nil))
	api.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestReceiveMessages(t *testing.T) {
	api := new(mockSQSAPI)
	svc := newTestService(api)
	ctx := context.Background()

	body, err := json.Marshal(Message{Type: MessageTypeBulkIndex, Events: []domain.SecurityEvent{{ID: "a"}, {ID: "b"}}})
	require.NoError(t, err)

	api.On("ReceiveMessage", ctx, mock.MatchedBy(func(in *sqs.ReceiveMessageInput) bool {
		return in.MaxNumberOfMessages == 10 && in.WaitTimeSeconds == 20
	})).Return(&sqs.ReceiveMessageOutput{
		Messages: []types.Message{{Body: aws.String(string(body)), ReceiptHandle: aws.String("rh-1")}},
	}, nil)

	msgs, err := svc.ReceiveMessages(ctx, svc.IndexQueueURL(), 10, 20)

	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, MessageTypeBulkIndex, msgs[0].Message.Type)
	assert.Len(t, msgs[0].Message.Events, 2)
	assert.Equal(t, "rh-1", aws.ToString(msgs[0].ReceiptHandle))
}

func TestReceiveMessages_MalformedBody(t *testing.T) {
	api := new(mockSQSAPI)
	svc := newTestService(api)
	ctx := context.Background()

	api.On("ReceiveMessage", ctx, mock.Anything).Return(&sqs.ReceiveMessageOutput{
		Messages: []types.Message{{Body: aws.String("not json")}},
	}, nil)

	_, err := svc.ReceiveMessages(ctx, svc.IndexQueueURL(), 1, 0)
	assert.Error(t, err)
}
