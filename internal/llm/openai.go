package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

var errNoChoices = errors.New("no response choices returned")

// toOpenAIMessages converts messages for OpenAI-compatible endpoints. Images
// are sent as data URIs next to the text of a user message.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			out[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			out[i] = openai.AssistantMessage(msg.Content)
		default:
			if len(msg.Images) == 0 {
				out[i] = openai.UserMessage(msg.Content)
				continue
			}
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(msg.Images)+1)
			parts = append(parts, openai.TextContentPart(msg.Content))
			for _, img := range msg.Images {
				parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: img.DataURI(),
				}))
			}
			out[i] = openai.UserMessage(parts)
		}
	}
	return out
}

// openAIChat runs one chat completion and returns the first choice.
func openAIChat(ctx context.Context, client openai.Client, model string, messages []Message) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    model,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// decodeJSON unmarshals the JSON found in an LLM response.
func decodeJSON(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}
