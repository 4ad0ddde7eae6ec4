package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/infrastructure/mail"
	"github.com/portfolio-api/internal/pkg/id"
	pkgtoken "github.com/portfolio-api/internal/pkg/token"
	"github.com/portfolio-api/internal/pkg/validate"
)

const (
	codeDigits = 8
	// DefaultCodeTTL is how long a verification code stays redeemable.
	DefaultCodeTTL = 10 * time.Minute
)

// Service runs the two-step contact flow: email a one-time code, then store
// the message once the code comes back.
type Service interface {
	RequestCode(ctx context.Context, req domain.ContactRequest) (sessionID string, err error)
	VerifyCode(ctx context.Context, req domain.VerifyCodeRequest) (*domain.Message, error)
}

type verificationStore interface {
	Put(sessionID string, v *domain.PendingVerification)
	Get(sessionID string) (*domain.PendingVerification, bool)
	Remove(sessionID string)
	Take(sessionID string, seen *domain.PendingVerification) bool
	Restore(v *domain.PendingVerification)
}

type messageStore interface {
	Create(ctx context.Context, m *domain.Message) error
}

type ownerAlert interface {
	MessageReceived(ctx context.Context, name, email, subject string) error
}

// ServiceDeps bundles the collaborators of the contact service.
// Alert is optional. Now, NewCode and NewSessionID default to the real clock
// and crypto/rand generators.
type ServiceDeps struct {
	Verifications verificationStore
	Messages      messageStore
	Mailer        mail.Mailer
	Alert         ownerAlert
	CodeTTL       time.Duration

	Now          func() time.Time
	NewCode      func() (string, error)
	NewSessionID func() (string, error)
}

type service struct {
	verifications verificationStore
	messages      messageStore
	mailer        mail.Mailer
	alert         ownerAlert
	ttl           time.Duration
	now           func() time.Time
	newCode       func() (string, error)
	newSessionID  func() (string, error)
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		verifications: deps.Verifications,
		messages:      deps.Messages,
		mailer:        deps.Mailer,
		alert:         deps.Alert,
		ttl:           deps.CodeTTL,
		now:           deps.Now,
		newCode:       deps.NewCode,
		newSessionID:  deps.NewSessionID,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultCodeTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = func() (string, error) { return pkgtoken.NewNumericCode(codeDigits) }
	}
	if s.newSessionID == nil {
		s.newSessionID = pkgtoken.NewSessionID
	}
	return s
}

func (s *service) RequestCode(ctx context.Context, req domain.ContactRequest) (string, error) {
	req = trimContact(req)
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	code, err := s.newCode()
	if err != nil {
		return "", err
	}
	sessionID, err := s.newSessionID()
	if err != nil {
		return "", err
	}

	// The record is stored before sending and is not rolled back if the
	// send fails; it simply expires unused.
	s.verifications.Put(sessionID, &domain.PendingVerification{
		SessionID: sessionID,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
		Payload:   req,
	})

	msg, err := mail.VerificationCodeEmail(req, code, s.ttl)
	if err != nil {
		return "", err
	}
	if err := s.mailer.SendEmail(ctx, msg); err != nil {
		slog.Error("verification email not sent", "email", req.Email, "err", err)
		return "", fmt.Errorf("send verification code: %v: %w", err, domain.ErrDelivery)
	}
	return sessionID, nil
}

func (s *service) VerifyCode(ctx context.Context, req domain.VerifyCodeRequest) (*domain.Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	pending, ok := s.verifications.Get(req.SessionID)
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	if pending.Expired(s.now()) {
		s.verifications.Remove(req.SessionID)
		return nil, domain.ErrExpired
	}
	if pending.Code != req.Code {
		return nil, domain.ErrIncorrectCode
	}

	// Claim the record so a concurrent verify of the same session cannot
	// also persist it. It goes back in if storage fails.
	if !s.verifications.Take(req.SessionID, pending) {
		return nil, domain.ErrInvalidSession
	}

	now := s.now().UTC()
	m := &domain.Message{
		MessageID: id.NewAt(now),
		Name:      pending.Payload.Name,
		Email:     pending.Payload.Email,
		Subject:   pending.Payload.Subject,
		Content:   pending.Payload.Content,
		Read:      false,
		CreatedAt: now,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		s.verifications.Restore(pending)
		slog.Error("verified message not stored", "session_id", req.SessionID, "err", err)
		return nil, fmt.Errorf("store message: %v: %w", err, domain.ErrPersistence)
	}

	if s.alert != nil {
		if err := s.alert.MessageReceived(ctx, m.Name, m.Email, m.Subject); err != nil {
			slog.Warn("owner alert failed", "message_id", m.MessageID, "err", err)
		}
	}
	return m, nil
}

func trimContact(req domain.ContactRequest) domain.ContactRequest {
	return domain.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Content: strings.TrimSpace(req.Content),
	}
}
