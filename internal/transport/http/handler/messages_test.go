package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockMessageSvc struct{ mock.Mock }

func (m *mockMessageSvc) List(ctx context.Context) ([]domain.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageSvc) ListUnread(ctx context.Context, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageSvc) CountUnread(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockMessageSvc) Get(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if v, _ := args.Get(0).(*domain.Message); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageSvc) SetRead(ctx context.Context, id string, req domain.UpdateMessageRequest) (*domain.Message, error) {
	args := m.Called(ctx, id, req)
	if v, _ := args.Get(0).(*domain.Message); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageSvc) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMessageSvc) Reply(ctx context.Context, id string, req domain.ReplyMessageRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestList_EmptyIsArray(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("List", mock.Anything).Return([]domain.Message{}, nil)
	h := NewMessageHandler(svc)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"messages":[]}`, rr.Body.String())
}

func TestListUnread_ParsesLimit(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("ListUnread", mock.Anything, 3).Return([]domain.Message{{MessageID: "m1"}}, nil)
	h := NewMessageHandler(svc)

	rr := httptest.NewRecorder()
	h.ListUnread(rr, httptest.NewRequest(http.MethodGet, "/api/admin/messages/unread?limit=3", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestListUnread_DefaultLimitLeftToService(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("ListUnread", mock.Anything, 0).Return([]domain.Message{}, nil)
	h := NewMessageHandler(svc)

	rr := httptest.NewRecorder()
	h.ListUnread(rr, httptest.NewRequest(http.MethodGet, "/api/admin/messages/unread", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestListUnread_BadLimit(t *testing.T) {
	h := NewMessageHandler(&mockMessageSvc{})
	rr := httptest.NewRecorder()
	h.ListUnread(rr, httptest.NewRequest(http.MethodGet, "/api/admin/messages/unread?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCountUnread(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("CountUnread", mock.Anything).Return(4, nil)
	h := NewMessageHandler(svc)

	rr := httptest.NewRecorder()
	h.CountUnread(rr, httptest.NewRequest(http.MethodGet, "/api/admin/messages/unread-count", nil))
	assert.JSONEq(t, `{"count":4}`, rr.Body.String())
}

func TestGetMessage_NotFound(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	h := NewMessageHandler(svc)

	rr := httptest.NewRecorder()
	h.Get(rr, withChiID(httptest.NewRequest(http.MethodGet, "/api/admin/messages/missing", nil), "missing"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateMessage_MarksRead(t *testing.T) {
	read := true
	svc := &mockMessageSvc{}
	svc.On("SetRead", mock.Anything, "m1", domain.UpdateMessageRequest{Read: &read}).
		Return(&domain.Message{MessageID: "m1", Read: true}, nil)
	h := NewMessageHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodPut, "/api/admin/messages/m1", bytes.NewBufferString(`{"read":true}`)), "m1")
	rr := httptest.NewRecorder()
	h.Update(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp MessageItemEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Message.Read)
}

func TestDeleteMessage_NoContent(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("Delete", mock.Anything, "m1").Return(nil)
	h := NewMessageHandler(svc)

	rr := httptest.NewRecorder()
	h.Delete(rr, withChiID(httptest.NewRequest(http.MethodDelete, "/api/admin/messages/m1", nil), "m1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestReply_DeliveryFailure(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("Reply", mock.Anything, "m1", domain.ReplyMessageRequest{Content: "Thanks"}).
		Return(fmt.Errorf("send reply: 535: %w", domain.ErrDelivery))
	h := NewMessageHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodPost, "/api/admin/messages/m1/reply", bytes.NewBufferString(`{"content":"Thanks"}`)), "m1")
	rr := httptest.NewRecorder()
	h.Reply(rr, r)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, msgReplyFailed, decodeError(t, rr))
}

func TestReply_OK(t *testing.T) {
	svc := &mockMessageSvc{}
	svc.On("Reply", mock.Anything, "m1", domain.ReplyMessageRequest{Content: "Thanks"}).Return(nil)
	h := NewMessageHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodPost, "/api/admin/messages/m1/reply", bytes.NewBufferString(`{"content":"Thanks"}`)), "m1")
	rr := httptest.NewRecorder()
	h.Reply(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"reply sent"}`, rr.Body.String())
}
