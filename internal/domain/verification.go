package domain

import "time"

// ContactRequest is the contact form as submitted by a visitor.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type VerifyCodeRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Code      string `json:"code" validate:"required"`
}

// PendingVerification holds a one-time code and the contact form it unlocks.
// It lives in process memory only, until redeemed or found expired.
type PendingVerification struct {
	SessionID string
	Code      string
	ExpiresAt time.Time
	Payload   ContactRequest
}

// Expired reports whether the record is no longer redeemable at now.
func (p *PendingVerification) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
