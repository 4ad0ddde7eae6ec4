package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/portfolio-api/internal/domain"
)

// Client-facing messages. Infrastructure error text never reaches the wire.
const (
	msgInvalidBody     = "invalid request body"
	msgInvalidSession  = "invalid or expired verification code"
	msgExpired         = "verification code expired"
	msgIncorrectCode   = "incorrect verification code"
	msgSendCodeFailed  = "could not send the verification code"
	msgVerifyFailed    = "could not verify the code"
	msgReplyFailed     = "could not send the reply"
	msgInternal        = "internal server error"
	msgMessageNotFound = "message not found"
)

// httpError maps a service error to a status and a safe message. fallback is
// used for 500s.
func httpError(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidSession):
		return http.StatusBadRequest, msgInvalidSession
	case errors.Is(err, domain.ErrExpired):
		return http.StatusBadRequest, msgExpired
	case errors.Is(err, domain.ErrIncorrectCode):
		return http.StatusBadRequest, msgIncorrectCode
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgMessageNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, fallback
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, msg := httpError(err, fallback)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeError(w, status, msg)
}

// MethodNotAllowed answers 405 with the allowed methods in the Allow header.
func MethodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		if allow != "" {
			w.Header().Set("Allow", allow)
		}
		writeError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
	}
}
