package handler

import (
	"encoding/json"
	"net/http"

	"github.com/portfolio-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResultEnvelope wraps contact-flow and reply responses.
type ResultEnvelope struct {
	Success   bool            `json:"success"`
	SessionID string          `json:"sessionId,omitempty"`
	Message   string          `json:"message,omitempty"`
	Data      *domain.Message `json:"data,omitempty"`
}

type MessagesEnvelope struct {
	Messages []domain.Message `json:"messages"`
}

type MessageItemEnvelope struct {
	Message *domain.Message `json:"message"`
}

type CountEnvelope struct {
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
