package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/portfolio-api/internal/config"
)

// Message is an outbound email with a plain-text and an HTML rendition.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends emails.
type Mailer interface {
	SendEmail(ctx context.Context, msg Message) error
}

// NewMailer returns the transport selected by cfg.MailProvider.
func NewMailer(cfg *config.Config) (Mailer, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP, "":
		return NewSMTPMailer(cfg), nil
	case config.MailProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("mail provider %q requires SENDGRID_API_KEY", cfg.MailProvider)
		}
		slog.Info("using sendgrid mail transport")
		return NewSendGridMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
