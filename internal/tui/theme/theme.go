// Package theme provides the wallpaper color themes.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme of a fresh wallpaper.
const DefaultName = "classic"

// Theme holds all colors for a wallpaper theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Wallpaper background
	BgHighlight string `toml:"bg_highlight"` // Free slots, header band
	BgSelection string `toml:"bg_selection"` // Cursor
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Day labels, hints
	Accent      string `toml:"accent"`       // Title, borders
	Card        string `toml:"card"`         // Subject cards
	Star        string `toml:"star"`         // Free-slot star
	Warning     string `toml:"warning"`      // Move/copy mode, errors

	// Modal palette (can override base theme values)
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Normalize maps a stored theme value to a theme name. Values written by
// older wallpapers carry a "theme-" prefix.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimPrefix(name, "theme-")
}

// Load loads a theme by name from embedded files.
// Unknown names fall back to the default theme.
func Load(name string) (*Theme, error) {
	name = Normalize(name)
	if name == "" {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the theme names in cycle order.
func Available() []string {
	return []string{"classic", "dark", "neon"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), Normalize(name))
}

// Next returns the theme after name in cycle order.
func Next(name string) string {
	names := Available()
	i := slices.Index(names, Normalize(name))
	return names[(i+1)%len(names)]
}
