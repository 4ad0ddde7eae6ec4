package mail

import (
	"context"
	"fmt"

	"github.com/portfolio-api/internal/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridMailer(cfg *config.Config) Mailer {
	return &sendGridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
	}
}

func (m *sendGridMailer) SendEmail(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(m.fromName, m.from)
	to := sgmail.NewEmail(msg.ToName, msg.To)
	resp, err := m.client.SendWithContext(ctx, sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
