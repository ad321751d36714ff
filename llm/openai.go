package llm

import (
	"clementus360/smarti-ai/types"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	openaiDefaultModel     = "gpt-4o-mini"
	openaiDefaultMaxTokens = 500
	openaiDefaultTimeout   = 30 * time.Second
)

type OpenAIOptions struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// OpenAICompleter calls the OpenAI chat completions API once per request.
type OpenAICompleter struct {
	client     openai.Client
	configured bool
	model      string
	maxTokens  int
}

func NewOpenAICompleter(opts OpenAIOptions) *OpenAICompleter {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = openaiDefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = openaiDefaultMaxTokens
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = openaiDefaultTimeout
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &OpenAICompleter{
		client:     openai.NewClient(requestOpts...),
		configured: apiKey != "",
		model:      model,
		maxTokens:  maxTokens,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []types.Message) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	resp, err := c.client.Chat.Completions.New(ctx, c.buildParams(messages))
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAICompleter) Configured() bool { return c.configured }

func (c *OpenAICompleter) buildParams(messages []types.Message) openai.ChatCompletionNewParams {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		params = append(params, toOpenAIMessage(msg))
	}

	return openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		Messages:  params,
		MaxTokens: openai.Int(int64(c.maxTokens)),
	}
}

// Assistant turns never carry images upstream, so only user turns get the
// two-part content array.
func toOpenAIMessage(msg types.Message) openai.ChatCompletionMessageParamUnion {
	if !msg.IsSent {
		return openai.AssistantMessage(msg.Text)
	}
	if msg.Image == nil {
		return openai.UserMessage(msg.Text)
	}

	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(msg.Text),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    msg.Image.URL,
			Detail: imageDetail(msg.Image),
		}),
	})
}

var _ Completer = (*OpenAICompleter)(nil)
