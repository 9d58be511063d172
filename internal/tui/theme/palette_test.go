package theme

import "testing"

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b  string
		ratio float64
		want  string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 0.5, "#808080"},
		{"#ff0000", "#0000ff", 2, "#0000ff"},
		{"bad", "#ffffff", 0.5, "bad"},
	}
	for _, tt := range tests {
		if got := blend(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blend(%s, %s, %v) = %s, want %s", tt.a, tt.b, tt.ratio, got, tt.want)
		}
	}
}

func TestIsLight(t *testing.T) {
	classic, _ := Load("classic")
	dark, _ := Load("dark")
	if !IsLight(classic.Bg) {
		t.Error("classic background should be light")
	}
	if IsLight(dark.Bg) {
		t.Error("dark background should be dark")
	}
}

func TestNewPalette_ReadableCardText(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		p := NewPalette(th)
		if c := contrast(string(p.Card), string(p.CardText)); c < 3 {
			t.Errorf("%s: card text contrast %.2f too low", name, c)
		}
		if p.CardAlt == p.Card {
			t.Errorf("%s: CardAlt should differ from Card", name)
		}
	}
}

func TestNewPalette_NilTheme(t *testing.T) {
	p := NewPalette(nil)
	if p.Bg == "" {
		t.Fatal("expected default palette for nil theme")
	}
}
