package handlers

import (
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/llm"
	"clementus360/smarti-ai/types"
	"encoding/json"
	"errors"
	"net/http"
)

const (
	notConfiguredMessage = "OpenAI API key not configured"
	chatFailedMessage    = "Failed to process your request"
)

// ChatHandler forwards a conversation upstream and returns the reply text.
// The credential check comes before the body is read.
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !llm.Configured(h.Completer) {
		writeJSON(w, http.StatusNotImplemented, types.CompletionError{Error: notConfiguredMessage})
		return
	}

	var req types.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode chat request:", err)
		writeJSON(w, http.StatusInternalServerError, types.CompletionError{Error: chatFailedMessage})
		return
	}

	reply, err := h.Completer.Complete(r.Context(), req.Messages)
	if errors.Is(err, llm.ErrNotConfigured) {
		writeJSON(w, http.StatusNotImplemented, types.CompletionError{Error: notConfiguredMessage})
		return
	}
	if err != nil {
		config.Logger.Error("Failed to get AI response:", err)
		writeJSON(w, http.StatusInternalServerError, types.CompletionError{Error: chatFailedMessage})
		return
	}

	writeJSON(w, http.StatusOK, types.CompletionResponse{Response: reply})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
