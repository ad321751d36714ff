package routes

import (
	"clementus360/smarti-ai/handlers"
	"net/http"
)

// RegisterChatRoutes registers the completion proxy and liveness probe
func RegisterChatRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /api/chat", h.ChatHandler)
	mux.HandleFunc("GET /healthz", handlers.HealthHandler)
}
