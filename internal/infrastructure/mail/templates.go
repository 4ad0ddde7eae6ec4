package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/portfolio-api/internal/domain"
)

var verificationHTML = template.Must(template.New("verification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="margin: 0 0 20px 0;">Verification code</h1>
  <p>Hello {{.Name}},</p>
  <p>Thanks for getting in touch. Enter the code below to send your message:</p>
  <p style="font-size: 32px; letter-spacing: 4px; font-weight: bold;">{{.Code}}</p>
  <p><strong>This code expires in {{.Minutes}} minutes.</strong><br>
  If you did not request it, you can ignore this email.</p>
</div>`))

var replyHTML = template.Must(template.New("reply").Parse(`<div style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px;">
  <p>Hello {{.Name}},</p>
  <p>Thanks for your message. Here is my reply:</p>
  <div style="border-left: 4px solid #667eea; padding-left: 12px; white-space: pre-line;">{{.Reply}}</div>
  <hr>
  <p style="color: #64748b;">Your original message, sent {{.Sent}}:</p>
  <p><strong>{{.Subject}}</strong></p>
  <div style="white-space: pre-line;">{{.Content}}</div>
</div>`))

// VerificationCodeEmail renders the one-time code email for a contact submission.
// The code appears verbatim in both bodies.
func VerificationCodeEmail(req domain.ContactRequest, code string, ttl time.Duration) (Message, error) {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	var html bytes.Buffer
	err := verificationHTML.Execute(&html, struct {
		Name    string
		Code    string
		Minutes int
	}{req.Name, code, minutes})
	if err != nil {
		return Message{}, fmt.Errorf("render verification email: %w", err)
	}
	return Message{
		To:      req.Email,
		ToName:  req.Name,
		Subject: "Verification code - Portfolio contact",
		Text:    fmt.Sprintf("Verification code: %s\n\nThis code expires in %d minutes.", code, minutes),
		HTML:    html.String(),
	}, nil
}

// ReplyEmail renders an admin reply to a stored contact message, quoting the original.
func ReplyEmail(original *domain.Message, reply string) (Message, error) {
	sent := original.CreatedAt.Format("02/01/2006 15:04")
	var html bytes.Buffer
	err := replyHTML.Execute(&html, struct {
		Name, Reply, Sent, Subject, Content string
	}{original.Name, reply, sent, original.Subject, original.Content})
	if err != nil {
		return Message{}, fmt.Errorf("render reply email: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s,\n\nThanks for your message. Here is my reply:\n\n%s\n\n", original.Name, reply)
	fmt.Fprintf(&text, "---\nYour original message:\nSubject: %s\nSent %s\n\n%s\n", original.Subject, sent, original.Content)

	return Message{
		To:      original.Email,
		ToName:  original.Name,
		Subject: "Re: " + original.Subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
