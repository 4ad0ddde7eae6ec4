package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/portfolio-api/internal/application/message"
	"github.com/portfolio-api/internal/domain"
)

// MessageHandler serves the admin inbox.
type MessageHandler struct {
	svc message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler { return &MessageHandler{svc: svc} }

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: msgs})
}

func (h *MessageHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	msgs, err := h.svc.ListUnread(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: msgs})
}

func (h *MessageHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountUnread(r.Context())
	if err != nil {
		writeServiceError(w, r, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, CountEnvelope{Count: n})
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, MessageItemEnvelope{Message: m})
}

func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	m, err := h.svc.SetRead(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, MessageItemEnvelope{Message: m})
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, msgInternal)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req domain.ReplyMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := h.svc.Reply(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeServiceError(w, r, err, msgReplyFailed)
		return
	}
	writeJSON(w, http.StatusOK, ResultEnvelope{Success: true, Message: "reply sent"})
}
