package llm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

var errNoGitHubToken = errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot in your editor")

// LoadGitHubToken returns the GitHub OAuth token used for the Copilot
// exchange. GITHUB_TOKEN and GH_TOKEN win over the editor plugin files in
// <config>/github-copilot/{hosts,apps}.json.
func LoadGitHubToken() (string, error) {
	for _, env := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := os.Getenv(env); token != "" {
			return token, nil
		}
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	for _, name := range []string{"hosts.json", "apps.json"} {
		data, err := os.ReadFile(filepath.Join(configDir, "github-copilot", name))
		if err != nil {
			continue
		}
		if token := oauthToken(data); token != "" {
			return token, nil
		}
	}

	return "", errNoGitHubToken
}

// oauthToken finds the oauth_token of the first github.com entry.
func oauthToken(data []byte) string {
	var token string
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if strings.Contains(key.String(), "github.com") {
			token = value.Get("oauth_token").String()
		}
		return token == ""
	})
	return token
}
