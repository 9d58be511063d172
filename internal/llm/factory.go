package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderCopilot    = "copilot"
	ProviderOllama     = "ollama"
	ProviderLMStudio   = "lmstudio"
)

// Providers lists the supported provider names.
var Providers = []string{ProviderOpenRouter, ProviderCopilot, ProviderOllama, ProviderLMStudio}

// NewClient builds the vision client for provider. An empty provider means
// OpenRouter.
func NewClient(provider, model, baseURL string) (Client, error) {
	var (
		client Client
		err    error
	)
	switch p := NormalizeProvider(provider); p {
	case ProviderOpenRouter:
		client, err = NewOpenRouterClient(model, baseURL)
	case ProviderCopilot:
		client, err = NewCopilotClient(model)
	case ProviderOllama:
		client, err = NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		client, err = NewLMStudioClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported vision provider %q (want one of %s)", provider, strings.Join(Providers, ", "))
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NormalizeProvider maps aliases to a canonical provider name. Unknown names
// are returned lower-cased.
func NormalizeProvider(provider string) string {
	switch p := strings.ToLower(strings.TrimSpace(provider)); p {
	case "":
		return ProviderOpenRouter
	case "lm-studio", "llmstudio":
		return ProviderLMStudio
	default:
		return p
	}
}
