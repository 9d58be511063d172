package llm

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"

	// DefaultOllamaModel is the smallest local model that reads screenshots.
	DefaultOllamaModel = "llava"
)

// OllamaClient reads schedules with a local Ollama vision model through
// langchaingo.
type OllamaClient struct {
	client  *ollama.LLM
	model   string
	baseURL string
}

// NewOllamaClient creates an Ollama client. Empty arguments fall back to
// DefaultOllamaModel on the local daemon.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	model = cmp.Or(strings.TrimSpace(model), DefaultOllamaModel)
	baseURL = cmp.Or(baseURL, defaultOllamaBaseURL)

	client, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaClient{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends messages to the model and returns its reply.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.generate(ctx, messages)
}

// ChatJSON asks the model for JSON output and decodes it into result.
func (c *OllamaClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.generate(ctx, messages, llms.WithJSONMode())
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func (c *OllamaClient) generate(ctx context.Context, messages []Message, opts ...llms.CallOption) (string, error) {
	opts = append(opts, llms.WithModel(c.model))
	resp, err := c.client.GenerateContent(ctx, toLangChainMessages(messages), opts...)
	if err != nil {
		return "", fmt.Errorf("ollama %s: %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Content, nil
}

func toLangChainMessages(messages []Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch strings.ToLower(msg.Role) {
		case "system":
			role = llms.ChatMessageTypeSystem
		case "assistant":
			role = llms.ChatMessageTypeAI
		}

		parts := make([]llms.ContentPart, 0, len(msg.Images)+1)
		parts = append(parts, llms.TextContent{Text: msg.Content})
		for _, img := range msg.Images {
			parts = append(parts, llms.BinaryPart(img.MIMEType, img.Data))
		}
		result = append(result, llms.MessageContent{Role: role, Parts: parts})
	}
	return result
}
