package colour

import (
	"math"
	"strings"
	"testing"
)

func TestSwatch(t *testing.T) {
	got := Swatch(RGB{R: 255, G: 0, B: 128}, 3)
	want := "\033[48;2;255;0;128m   \033[0m"
	if got != want {
		t.Errorf("Swatch() = %q, want %q", got, want)
	}

	if visible := StripANSI(Swatch(RGB{}, 0)); len(visible) != defaultWidth {
		t.Errorf("default width = %d, want %d", len(visible), defaultWidth)
	}
}

func TestSwatchWithText(t *testing.T) {
	tests := []struct {
		name   string
		colour RGB
		text   string
		width  int
		fg     string
		body   string
	}{
		{"dark background gets white text", RGB{R: 0, G: 0, B: 128}, "navy", 8, "38;2;255;255;255", "  navy  "},
		{"light background gets black text", RGB{R: 255, G: 255, B: 224}, "ivory", 8, "38;2;0;0;0", " ivory  "},
		{"long text is cut", RGB{R: 128, G: 128, B: 128}, "grayish", 4, "38;2;0;0;0", "gray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SwatchWithText(tt.colour, tt.text, tt.width)
			if !strings.Contains(got, tt.fg) {
				t.Errorf("SwatchWithText() = %q, want foreground %s", got, tt.fg)
			}
			if visible := StripANSI(got); visible != tt.body {
				t.Errorf("visible text = %q, want %q", visible, tt.body)
			}
		})
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		colour RGB
		want   float64
	}{
		{RGB{}, 0},
		{RGB{R: 255, G: 255, B: 255}, 1},
		{RGB{R: 255}, 0.2126},
		{RGB{G: 255}, 0.7152},
		{RGB{B: 255}, 0.0722},
	}

	for _, tt := range tests {
		if got := Luminance(tt.colour); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Luminance(%v) = %v, want %v", tt.colour, got, tt.want)
		}
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"\033[48;2;1;2;3m  \033[0m", "  "},
		{"a\033[38;2;0;0;0mb\033[0mc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripANSI(tt.in); got != tt.want {
			t.Errorf("StripANSI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
