package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	last *sns.PublishInput
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.last = in
	return &sns.PublishOutput{}, f.err
}

func TestOwnerAlert_PublishesToOwnerPhone(t *testing.T) {
	pub := &fakePublisher{}
	alert := NewOwnerAlert(&sender{client: pub}, "+33600000000")

	require.NoError(t, alert.MessageReceived(context.Background(), "Ada", "ada@x.com", "Hi"))
	require.NotNil(t, pub.last)
	assert.Equal(t, "+33600000000", *pub.last.PhoneNumber)
	assert.Contains(t, *pub.last.Message, "Ada <ada@x.com>: Hi")
}

func TestSendSMS_WrapsError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("throttled")}
	err := (&sender{client: pub}).SendSMS(context.Background(), "+1", "x")
	assert.ErrorContains(t, err, "sns publish: throttled")
}
