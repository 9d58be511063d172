package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/config"
	"github.com/jy-crnz/SchedulerDesigner/internal/llm"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  schedwall config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.LLM.Provider = promptChoice(reader, "Vision provider", cfg.LLM.Provider, llm.Providers)
	cfg.LLM.Model = promptValue(reader, "Model (empty for provider default)", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "Base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Storage.Profile = promptValue(reader, "Default profile", cfg.Storage.Profile)
	cfg.UI.Theme = promptChoice(reader, "Theme", cfg.UI.Theme, theme.Available())
	cfg.Server.Addr = promptValue(reader, "Server address", cfg.Server.Addr)
	cfg.Server.AllowedOrigins = promptSlice(reader, "Allowed origins (comma-separated)", cfg.Server.AllowedOrigins)
	cfg.Server.MaxUploadMB = promptInt(reader, "Max upload size (MB)", cfg.Server.MaxUploadMB)
	cfg.Scan.MaxImageDim = promptInt(reader, "Max image dimension (px)", cfg.Scan.MaxImageDim)
	cfg.Scan.Timeout = promptValue(reader, "Scan timeout", cfg.Scan.Timeout)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[llm]")
	fmt.Printf("  provider        = %s\n", cfg.LLM.Provider)
	fmt.Printf("  model           = %s\n", cfg.LLM.Model)
	fmt.Printf("  base_url        = %s\n", cfg.LLM.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path         = %s\n", cfg.Storage.DBPath)
	fmt.Printf("  profile         = %s\n", cfg.Storage.Profile)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme           = %s\n", cfg.UI.Theme)
	fmt.Println("\n[server]")
	fmt.Printf("  addr            = %s\n", cfg.Server.Addr)
	fmt.Printf("  allowed_origins = %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	fmt.Printf("  max_upload_mb   = %d\n", cfg.Server.MaxUploadMB)
	fmt.Println("\n[scan]")
	fmt.Printf("  max_image_dim   = %d\n", cfg.Scan.MaxImageDim)
	fmt.Printf("  timeout         = %s\n", cfg.Scan.Timeout)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Printf("  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Printf("  Invalid number %q\n", value)
	}
}

func promptChoice(reader *bufio.Reader, label, current string, options []string) string {
	joined := strings.Join(options, ", ")
	label = fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		for _, o := range options {
			if value == o {
				return value
			}
		}
		fmt.Printf("  Invalid choice %q. Available: %s\n", value, joined)
	}
}
