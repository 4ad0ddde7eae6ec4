package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/infrastructure/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Get(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) List(ctx context.Context) ([]domain.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockStore) ListUnread(ctx context.Context, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockStore) CountUnread(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) SetRead(ctx context.Context, id string, read bool) (*domain.Message, error) {
	args := m.Called(ctx, id, read)
	if v := args.Get(0); v != nil {
		return v.(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func newTestService() (Service, *mockStore, *mockMailer) {
	store := &mockStore{}
	mailer := &mockMailer{}
	return NewService(ServiceDeps{Messages: store, Mailer: mailer}), store, mailer
}

var stored = &domain.Message{
	MessageID: "01J0000000000000000000000A",
	Name:      "Ada",
	Email:     "ada@x.com",
	Subject:   "Hi",
	Content:   "Hello",
	CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
}

func boolPtr(b bool) *bool { return &b }

func TestListUnread_DefaultLimit(t *testing.T) {
	svc, store, _ := newTestService()
	store.On("ListUnread", mock.Anything, DefaultUnreadLimit).Return([]domain.Message{*stored}, nil)

	msgs, err := svc.ListUnread(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	store.AssertExpectations(t)
}

func TestListUnread_ExplicitLimit(t *testing.T) {
	svc, store, _ := newTestService()
	store.On("ListUnread", mock.Anything, 20).Return([]domain.Message{}, nil)

	_, err := svc.ListUnread(context.Background(), 20)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSetRead(t *testing.T) {
	svc, store, _ := newTestService()
	updated := *stored
	updated.Read = true
	store.On("SetRead", mock.Anything, stored.MessageID, true).Return(&updated, nil)

	m, err := svc.SetRead(context.Background(), stored.MessageID, domain.UpdateMessageRequest{Read: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, m.Read)
}

func TestSetRead_MissingField(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.SetRead(context.Background(), stored.MessageID, domain.UpdateMessageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "SetRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestReply_SendsQuotedEmail(t *testing.T) {
	svc, store, mailer := newTestService()
	store.On("Get", mock.Anything, stored.MessageID).Return(stored, nil)
	mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(m mail.Message) bool {
		return m.To == "ada@x.com" && m.Subject == "Re: Hi"
	})).Return(nil)

	err := svc.Reply(context.Background(), stored.MessageID, domain.ReplyMessageRequest{Content: " Thanks! "})
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestReply_EmptyContent(t *testing.T) {
	svc, store, mailer := newTestService()

	err := svc.Reply(context.Background(), stored.MessageID, domain.ReplyMessageRequest{Content: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestReply_NotFound(t *testing.T) {
	svc, store, mailer := newTestService()
	store.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	err := svc.Reply(context.Background(), "missing", domain.ReplyMessageRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestReply_DeliveryFailure(t *testing.T) {
	svc, store, mailer := newTestService()
	store.On("Get", mock.Anything, stored.MessageID).Return(stored, nil)
	mailer.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("535 auth failed"))

	err := svc.Reply(context.Background(), stored.MessageID, domain.ReplyMessageRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrDelivery)
}
