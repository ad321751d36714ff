package handlers

import (
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/llm"
	"clementus360/smarti-ai/middleware"
	"clementus360/smarti-ai/sessions"
	"clementus360/smarti-ai/types"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler serves the chat and session routes.
type Handler struct {
	Completer    llm.Completer
	Registry     *sessions.Registry
	Conversation *sessions.Conversation
}

func New(completer llm.Completer, registry *sessions.Registry, conversation *sessions.Conversation) *Handler {
	return &Handler{
		Completer:    completer,
		Registry:     registry,
		Conversation: conversation,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	resp := types.ErrorResponse{
		Success:      false,
		ErrorMessage: message,
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store sentinels to status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		writeError(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, sessions.ErrLastSession):
		writeError(w, "Cannot delete the last session", http.StatusConflict)
	case errors.Is(err, sessions.ErrRequestInFlight):
		writeError(w, "A message is already being answered in this session", http.StatusConflict)
	case errors.Is(err, sessions.ErrEmptyMessage):
		writeError(w, "Message is empty", http.StatusBadRequest)
	case errors.Is(err, sessions.ErrInvalidAttachment):
		writeError(w, attachmentMessage(err), http.StatusBadRequest)
	default:
		config.Logger.Error("Session operation failed:", err)
		writeError(w, "Something went wrong", http.StatusInternalServerError)
	}
}

// attachmentMessage keeps the user-facing reason of an attachment error.
func attachmentMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), sessions.ErrInvalidAttachment.Error()+": ")
	if msg == "" {
		return "Invalid attachment"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// workspace returns the caller's store; Auth must have run first.
func (h *Handler) workspace(w http.ResponseWriter, r *http.Request) (*sessions.Store, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return h.Registry.Workspace(r.Context(), userID), true
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, "Invalid session id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
