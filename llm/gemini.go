package llm

import (
	"clementus360/smarti-ai/types"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	geminiDefaultModel   = "gemini-2.0-flash"
	geminiDefaultTimeout = 30 * time.Second
	fallbackImageMIME    = "image/jpeg"
)

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGeminiClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

type GeminiOptions struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// GeminiCompleter serves the same contract as OpenAICompleter on top of the
// Google GenAI SDK.
type GeminiCompleter struct {
	models    geminiModels
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewGeminiCompleter returns a completer that reports ErrNotConfigured on
// every call when no API key is given.
func NewGeminiCompleter(ctx context.Context, opts GeminiOptions) (*GeminiCompleter, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = geminiDefaultTimeout
	}
	completer := &GeminiCompleter{
		model:     model,
		maxTokens: opts.MaxTokens,
		timeout:   timeout,
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return completer, nil
	}

	client, err := newGeminiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	completer.models = client.Models
	return completer, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, messages []types.Message) (string, error) {
	if c.models == nil {
		return "", ErrNotConfigured
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		content, err := toGeminiContent(msg)
		if err != nil {
			return "", err
		}
		contents = append(contents, content)
	}

	cfg := &genai.GenerateContentConfig{}
	if c.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(c.maxTokens)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(callCtx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", ErrNoChoices
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func (c *GeminiCompleter) Configured() bool { return c.models != nil }

func toGeminiContent(msg types.Message) (*genai.Content, error) {
	role := genai.RoleModel
	if msg.IsSent {
		role = genai.RoleUser
	}

	parts := []*genai.Part{{Text: msg.Text}}
	if msg.Image != nil && msg.IsSent {
		part, err := imagePart(msg.Image.URL)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return &genai.Content{Role: role, Parts: parts}, nil
}

// imagePart inlines data URLs and references everything else by URI.
func imagePart(raw string) (*genai.Part, error) {
	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("unsupported image data url")
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode image data url: %w", err)
		}
		mimeType := strings.TrimSuffix(meta, ";base64")
		if mimeType == "" {
			mimeType = fallbackImageMIME
		}
		return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse image url: %w", err)
	}
	mimeType := mime.TypeByExtension(path.Ext(u.Path))
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = fallbackImageMIME
	}
	return &genai.Part{FileData: &genai.FileData{FileURI: raw, MIMEType: mimeType}}, nil
}

var _ Completer = (*GeminiCompleter)(nil)
