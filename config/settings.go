package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Settings is the whole runtime configuration, read from the environment.
type Settings struct {
	Port int `env:"PORT" envDefault:"8080"`

	// Completion upstream
	Provider        string        `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"`
	OpenAIModel     string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	MaxTokens       int           `env:"MAX_TOKENS" envDefault:"500"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	// Conversation
	TypingDelay  bool          `env:"TYPING_DELAY" envDefault:"true"`
	WorkspaceTTL time.Duration `env:"WORKSPACE_TTL" envDefault:"24h"`

	// Supabase
	SupabaseURL       string `env:"SUPABASE_URL"`
	SupabaseKey       string `env:"SUPABASE_KEY"`
	SupabaseJWTSecret string `env:"SUPABASE_JWT_SECRET"`

	// Server
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"LOG_FILE"`
}

func Load() (Settings, error) {
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	settings.Provider = strings.ToLower(strings.TrimSpace(settings.Provider))
	if settings.Provider != ProviderOpenAI && settings.Provider != ProviderGemini {
		return Settings{}, fmt.Errorf("unsupported LLM_PROVIDER %q (supported: %s, %s)", settings.Provider, ProviderOpenAI, ProviderGemini)
	}
	return settings, nil
}

// ArchiveEnabled reports whether sessions should be written to Supabase.
func (s Settings) ArchiveEnabled() bool {
	return s.SupabaseURL != "" && s.SupabaseKey != ""
}

func (s Settings) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
