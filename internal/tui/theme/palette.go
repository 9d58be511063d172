package theme

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds lipgloss colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Star        lipgloss.Color
	Warning     lipgloss.Color

	Card       lipgloss.Color
	CardAlt    lipgloss.Color // alternating rows
	CardText   lipgloss.Color
	CardMarked lipgloss.Color // source card of a pending move/copy

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors.
type ModalColors struct {
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Panel     lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t.Bg)
	card := t.Card
	if !light {
		card = blend(t.Card, t.Bg, 0.35)
	}
	shade := "#ffffff"
	if light {
		shade = "#000000"
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Star:        lipgloss.Color(t.Star),
		Warning:     lipgloss.Color(t.Warning),

		Card:       lipgloss.Color(card),
		CardAlt:    lipgloss.Color(blend(card, shade, 0.12)),
		CardText:   lipgloss.Color(readableOn(card, t.Fg, t.Bg)),
		CardMarked: lipgloss.Color(blend(card, t.Warning, 0.5)),

		TextOnAccent:  lipgloss.Color(readableOn(t.Accent, t.Fg, t.Bg)),
		TextOnWarning: lipgloss.Color(readableOn(t.Warning, t.Fg, t.Bg)),

		Modal: ModalColors{
			Border:    lipgloss.Color(t.ModalBorder),
			Text:      lipgloss.Color(t.TextPrimary),
			Muted:     lipgloss.Color(t.TextMuted),
			Highlight: lipgloss.Color(t.Highlight),
			Panel:     lipgloss.Color(coalesce(t.BgHighlight, t.Bg)),
		},
	}
}

// IsLight reports whether a background color is light.
func IsLight(bg string) bool {
	return luminance(bg) > 0.55
}

// readableOn picks whichever of a and b contrasts more with bg.
func readableOn(bg, a, b string) string {
	if contrast(bg, a) >= contrast(bg, b) {
		return a
	}
	return b
}

func contrast(a, b string) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func luminance(hex string) float64 {
	r, g, b, ok := rgb(hex)
	if !ok {
		return 0
	}
	return 0.2126*linear(r) + 0.7152*linear(g) + 0.0722*linear(b)
}

func linear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blend mixes ratio of b into a. Invalid input returns a unchanged.
func blend(a, b string, ratio float64) string {
	ar, ag, ab, okA := rgb(a)
	br, bg, bb, okB := rgb(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-ratio) + float64(y)*ratio))
	}
	return hexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func rgb(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func hexColor(r, g, b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[r>>4], digits[r&0xf],
		digits[g>>4], digits[g&0xf],
		digits[b>>4], digits[b&0xf],
	})
}
