package routes

import (
	"clementus360/smarti-ai/handlers"
	"net/http"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(mux *http.ServeMux, h *handlers.Handler, auth func(http.Handler) http.Handler) {
	RegisterChatRoutes(mux, h)
	RegisterSessionRoutes(mux, h, auth)
}
