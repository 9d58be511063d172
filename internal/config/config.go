// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jy-crnz/SchedulerDesigner/internal/llm"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Server  ServerConfig  `toml:"server"`
	Scan    ScanConfig    `toml:"scan"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "classic", "dark", "neon"
}

// LLMConfig holds vision provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "openrouter", "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // empty uses the provider default
	BaseURL  string `toml:"base_url"` // ollama / lmstudio only
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath  string `toml:"db_path"`
	Profile string `toml:"profile"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	MaxUploadMB    int      `toml:"max_upload_mb"`
}

// ScanConfig holds scan pipeline settings.
type ScanConfig struct {
	MaxImageDim int    `toml:"max_image_dim"`
	Timeout     string `toml:"timeout"` // e.g., "60s"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: llm.ProviderOpenRouter,
		},
		Storage: StorageConfig{
			DBPath:  defaultDBPath(),
			Profile: "default",
		},
		UI: UIConfig{
			Theme: theme.DefaultName,
		},
		Server: ServerConfig{
			Addr: ":3000",
			AllowedOrigins: []string{
				"https://scheduler-designer.vercel.app",
				"https://scheduler-designer-6dxxqd53w-jy-crnzs-projects.vercel.app",
				"http://localhost:5500",
			},
			MaxUploadMB: 10,
		},
		Scan: ScanConfig{
			MaxImageDim: 2048,
			Timeout:     "60s",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "schedwall.db"
	}
	return filepath.Join(home, ".local", "share", "schedwall", "schedwall.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "schedwall", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.LLM.Provider = llm.NormalizeProvider(cfg.LLM.Provider)
	cfg.UI.Theme = theme.Normalize(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SCHEDWALL_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("SCHEDWALL_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("SCHEDWALL_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("SCHEDWALL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SCHEDWALL_PROFILE"); v != "" {
		cfg.Storage.Profile = v
	}

	if v := os.Getenv("SCHEDWALL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// PORT is what hosting platforms set.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("SCHEDWALL_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SCHEDWALL_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SCHEDWALL_MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCHEDWALL_MAX_UPLOAD_MB: %w", err)
		}
		cfg.Server.MaxUploadMB = n
	}

	if v := os.Getenv("SCHEDWALL_SCAN_TIMEOUT"); v != "" {
		cfg.Scan.Timeout = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(llm.Providers, c.LLM.Provider) {
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.BaseURL != "" {
		if u, err := url.Parse(c.LLM.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url must be an absolute URL, got %q", c.LLM.BaseURL)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if strings.TrimSpace(c.Storage.Profile) == "" {
		return errors.New("profile must be set")
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme: %s (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("max_upload_mb must be positive")
	}
	if c.Scan.MaxImageDim < 256 {
		return fmt.Errorf("max_image_dim must be at least 256, got %d", c.Scan.MaxImageDim)
	}
	if _, err := c.ScanTimeout(); err != nil {
		return err
	}
	return nil
}

// ScanTimeout parses the scan timeout.
func (c *Config) ScanTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Scan.Timeout)
	if err != nil {
		return 0, fmt.Errorf("scan timeout must be a duration like 60s, got %q", c.Scan.Timeout)
	}
	if d <= 0 {
		return 0, fmt.Errorf("scan timeout must be positive, got %q", c.Scan.Timeout)
	}
	return d, nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
