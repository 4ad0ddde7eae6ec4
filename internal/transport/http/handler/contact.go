package handler

import (
	"net/http"

	"github.com/portfolio-api/internal/application/contact"
	"github.com/portfolio-api/internal/domain"
)

// ContactHandler serves the public two-step contact form.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler { return &ContactHandler{svc: svc} }

// SendCode handles POST /api/send-verification-code.
func (h *ContactHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	sessionID, err := h.svc.RequestCode(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, msgSendCodeFailed)
		return
	}
	writeJSON(w, http.StatusOK, ResultEnvelope{
		Success:   true,
		SessionID: sessionID,
		Message:   "verification code sent by email",
	})
}

// VerifyCode handles POST /api/verify-code.
func (h *ContactHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	m, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, msgVerifyFailed)
		return
	}
	writeJSON(w, http.StatusCreated, ResultEnvelope{
		Success: true,
		Message: "message created",
		Data:    m,
	})
}
