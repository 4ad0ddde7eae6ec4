package http

import (
	"context"

	"github.com/portfolio-api/internal/domain"
)

// MessageRepository is the minimal interface the router requires from a message store.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	Get(ctx context.Context, messageID string) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	ListUnread(ctx context.Context, limit int) ([]domain.Message, error)
	CountUnread(ctx context.Context) (int, error)
	SetRead(ctx context.Context, messageID string, read bool) (*domain.Message, error)
	Delete(ctx context.Context, messageID string) error
}

// OwnerAlert notifies the site owner that a verified message arrived.
type OwnerAlert interface {
	MessageReceived(ctx context.Context, name, email, subject string) error
}
