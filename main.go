package main

import (
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/handlers"
	"clementus360/smarti-ai/llm"
	"clementus360/smarti-ai/middleware"
	"clementus360/smarti-ai/routes"
	"clementus360/smarti-ai/sessions"
	"clementus360/smarti-ai/supabase"
	"context"
	"net/http"
)

func main() {
	config.LoadEnv()
	settings, err := config.Load()
	if err != nil {
		config.Logger.Fatal("Invalid configuration: ", err)
	}
	config.InitLogger(settings)

	completer, err := llm.NewCompleter(context.Background(), settings)
	if err != nil {
		config.Logger.Fatal("Failed to create completer: ", err)
	}
	if !llm.Configured(completer) {
		config.Logger.Warn("No API key for provider ", settings.Provider, ", /api/chat will answer 501")
	}

	var archive sessions.Archive
	if settings.ArchiveEnabled() {
		client, err := supabase.NewClient(settings)
		if err != nil {
			config.Logger.Fatal(err)
		}
		archive = supabase.NewArchive(client)
	} else {
		config.Logger.Warn("SUPABASE_URL or SUPABASE_KEY is missing, sessions are kept in memory only")
	}

	h := handlers.New(
		completer,
		sessions.NewRegistry(settings.WorkspaceTTL, archive),
		sessions.NewConversation(completer, settings.TypingDelay),
	)

	mux := http.NewServeMux()
	routes.RegisterRoutes(mux, h, middleware.Auth(settings.SupabaseJWTSecret))

	handler := middleware.Chain(
		middleware.Logging,
		middleware.CORS(settings.CORSOrigin),
	)(mux)

	config.Logger.Info("Server is running on ", settings.Addr())
	config.Logger.Fatal(http.ListenAndServe(settings.Addr(), handler))
}
