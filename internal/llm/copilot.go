package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

const (
	copilotTokenURL = "https://api.github.com/copilot_internal/v2/token"
	copilotBaseURL  = "https://api.githubcopilot.com"
	userAgent       = "Schedwall/1.0"

	// DefaultCopilotModel is a vision-capable Copilot model.
	DefaultCopilotModel = "gpt-4o"
)

// NewCopilotClient signs in to GitHub Copilot with the local GitHub token and
// returns a client for its chat endpoint.
func NewCopilotClient(model string) (*CompatClient, error) {
	if model == "" {
		model = DefaultCopilotModel
	}

	githubToken, err := LoadGitHubToken()
	if err != nil {
		return nil, fmt.Errorf("loading GitHub token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	bearer, err := exchangeToken(ctx, http.DefaultClient, copilotTokenURL, githubToken)
	if err != nil {
		return nil, fmt.Errorf("exchanging token: %w", err)
	}

	return newCompatClient(ProviderCopilot, model, copilotBaseURL, bearer,
		option.WithHeader("Editor-Version", userAgent),
		option.WithHeader("Editor-Plugin-Version", userAgent),
		option.WithHeader("Copilot-Integration-Id", "vscode-chat"),
	), nil
}

// exchangeToken trades a GitHub OAuth token for a short-lived Copilot bearer
// token.
func exchangeToken(ctx context.Context, hc *http.Client, tokenURL, githubToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+githubToken)
	req.Header.Set("User-Agent", userAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed (status %d): %s", resp.StatusCode, body)
	}

	token := gjson.GetBytes(body, "token").String()
	if token == "" {
		return "", errors.New("token exchange returned no token")
	}
	return token, nil
}
