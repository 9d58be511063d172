package llm

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultLMStudioBaseURL   = "http://localhost:1234/v1"

	// DefaultOpenRouterModel reads schedule screenshots well and is cheap.
	DefaultOpenRouterModel = "google/gemini-2.0-flash-001"
)

// ErrMissingAPIKey is returned when OPENROUTER_API_KEY is not set.
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY is not set")

// CompatClient talks to any endpoint that speaks the OpenAI chat completions
// protocol, such as OpenRouter or a local LM Studio server.
type CompatClient struct {
	name    string
	client  openai.Client
	model   string
	baseURL string
}

func newCompatClient(name, model, baseURL, apiKey string, opts ...option.RequestOption) *CompatClient {
	opts = append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	}, opts...)
	return &CompatClient{
		name:    name,
		client:  openai.NewClient(opts...),
		model:   model,
		baseURL: baseURL,
	}
}

// NewOpenRouterClient creates a client for the OpenRouter gateway. The API
// key is read from OPENROUTER_API_KEY.
func NewOpenRouterClient(model, baseURL string) (*CompatClient, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultOpenRouterModel
	}
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newCompatClient(ProviderOpenRouter, model, baseURL, apiKey,
		option.WithHeader("X-Title", "Schedwall")), nil
}

// NewLMStudioClient creates a client for a local LM Studio server. LM Studio
// ignores the key, but the SDK refuses to send requests without one.
func NewLMStudioClient(model, baseURL string) (*CompatClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio needs a vision model name")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}
	apiKey := cmp.Or(os.Getenv("LMSTUDIO_API_KEY"), os.Getenv("OPENAI_API_KEY"), "lm-studio")
	return newCompatClient(ProviderLMStudio, model, baseURL, apiKey), nil
}

// Chat sends messages to the LLM and returns the response.
func (c *CompatClient) Chat(ctx context.Context, messages []Message) (string, error) {
	content, err := openAIChat(ctx, c.client, c.model, messages)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	return content, nil
}

// ChatJSON sends messages and parses the response as JSON into result.
func (c *CompatClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}
