package llm

import (
	"clementus360/smarti-ai/types"
	"context"
	"errors"
)

// ErrNotConfigured is returned when the upstream credential is missing.
var ErrNotConfigured = errors.New("llm: api key not configured")

// ErrNoChoices is returned when the upstream answered without any completion.
var ErrNoChoices = errors.New("llm: no choices returned")

const defaultImageDetail = "auto"

// Completer turns a conversation into the text of the top completion choice.
// Implementations hold no state between calls.
type Completer interface {
	Complete(ctx context.Context, messages []types.Message) (string, error)
}

// Configured reports whether c holds an upstream credential. Completers that
// cannot tell are assumed ready.
func Configured(c Completer) bool {
	if c == nil {
		return false
	}
	if r, ok := c.(interface{ Configured() bool }); ok {
		return r.Configured()
	}
	return true
}

func imageDetail(img *types.Image) string {
	if img == nil || img.Detail == "" {
		return defaultImageDetail
	}
	return img.Detail
}
