package routes

import (
	"clementus360/smarti-ai/handlers"
	"net/http"
)

// RegisterSessionRoutes registers all session-related routes behind auth
func RegisterSessionRoutes(mux *http.ServeMux, h *handlers.Handler, auth func(http.Handler) http.Handler) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth(fn))
	}

	handle("GET /api/sessions", h.GetSessionsHandler)
	handle("POST /api/sessions", h.CreateSessionHandler)
	handle("PUT /api/sessions/active", h.SelectSessionHandler)
	handle("GET /api/sessions/{id}", h.GetSessionHandler)
	handle("DELETE /api/sessions/{id}", h.DeleteSessionHandler)

	// Attachments staged for the next send
	handle("POST /api/sessions/{id}/attachments", h.StageAttachmentHandler)
	handle("DELETE /api/sessions/{id}/attachments", h.ClearAttachmentsHandler)

	handle("POST /api/sessions/{id}/messages", h.SendMessageHandler)
}
