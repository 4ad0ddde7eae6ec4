package message

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/infrastructure/mail"
	"github.com/portfolio-api/internal/pkg/validate"
)

// DefaultUnreadLimit caps ListUnread when the caller passes no limit.
const DefaultUnreadLimit = 5

type Service interface {
	List(ctx context.Context) ([]domain.Message, error)
	ListUnread(ctx context.Context, limit int) ([]domain.Message, error)
	CountUnread(ctx context.Context) (int, error)
	Get(ctx context.Context, messageID string) (*domain.Message, error)
	SetRead(ctx context.Context, messageID string, req domain.UpdateMessageRequest) (*domain.Message, error)
	Delete(ctx context.Context, messageID string) error
	Reply(ctx context.Context, messageID string, req domain.ReplyMessageRequest) error
}

type messageStore interface {
	Get(ctx context.Context, messageID string) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	ListUnread(ctx context.Context, limit int) ([]domain.Message, error)
	CountUnread(ctx context.Context) (int, error)
	SetRead(ctx context.Context, messageID string, read bool) (*domain.Message, error)
	Delete(ctx context.Context, messageID string) error
}

type ServiceDeps struct {
	Messages messageStore
	Mailer   mail.Mailer
}

type service struct {
	messages messageStore
	mailer   mail.Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{messages: deps.Messages, mailer: deps.Mailer}
}

func (s *service) List(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func (s *service) ListUnread(ctx context.Context, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = DefaultUnreadLimit
	}
	return s.messages.ListUnread(ctx, limit)
}

func (s *service) CountUnread(ctx context.Context) (int, error) {
	return s.messages.CountUnread(ctx)
}

func (s *service) Get(ctx context.Context, messageID string) (*domain.Message, error) {
	return s.messages.Get(ctx, messageID)
}

func (s *service) SetRead(ctx context.Context, messageID string, req domain.UpdateMessageRequest) (*domain.Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	return s.messages.SetRead(ctx, messageID, *req.Read)
}

func (s *service) Delete(ctx context.Context, messageID string) error {
	return s.messages.Delete(ctx, messageID)
}

// Reply emails the original sender, quoting their message.
func (s *service) Reply(ctx context.Context, messageID string, req domain.ReplyMessageRequest) error {
	req.Content = strings.TrimSpace(req.Content)
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	original, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return err
	}

	msg, err := mail.ReplyEmail(original, req.Content)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmail(ctx, msg); err != nil {
		slog.Error("reply not sent", "message_id", messageID, "err", err)
		return fmt.Errorf("send reply: %v: %w", err, domain.ErrDelivery)
	}
	slog.Info("reply sent", "message_id", messageID, "to", original.Email)
	return nil
}
