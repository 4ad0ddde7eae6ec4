package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("missing or invalid field")

	// Contact verification flow.
	ErrInvalidSession = errors.New("invalid or expired verification session")
	ErrExpired        = errors.New("verification code expired")
	ErrIncorrectCode  = errors.New("incorrect verification code")
	ErrDelivery       = errors.New("email delivery failed")
	ErrPersistence    = errors.New("message storage failed")
)
