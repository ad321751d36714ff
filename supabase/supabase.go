package supabase

import (
	"clementus360/smarti-ai/config"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// NewClient connects to the Supabase project named in settings.
func NewClient(settings config.Settings) (*supabase.Client, error) {
	if !settings.ArchiveEnabled() {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	client, err := supabase.NewClient(settings.SupabaseURL, settings.SupabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}
