package accent

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Accent
	}{
		{"from-blue-500 to-blue-600", Accent{From: "#3B82F6", To: "#2563EB"}},
		{"from-cyan-500 to-cyan-600", Accent{From: "#06B6D4", To: "#0891B2"}},
		{"from-pink-500", Accent{From: "#EC4899", To: "#EC4899"}},
		{"to-teal-600", Accent{From: "#0D9488", To: "#0D9488"}},
		{"from-#ff0000 to-#00ff00", Accent{From: "#FF0000", To: "#00FF00"}},
		{"from-plaid-500 to-plaid-600", Fallback},
		{"from-blue-950", Fallback},
		{"", Fallback},
		{"bg-gradient-to-r", Fallback},
	}

	for _, tt := range tests {
		if got := Parse(tt.token); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.token, got, tt.want)
		}
	}
}

func TestBlend(t *testing.T) {
	a := Accent{From: "#000000", To: "#ffffff"}

	if got := a.Blend(0); got != nil {
		t.Errorf("Blend(0) = %v, want nil", got)
	}

	one := a.Blend(1)
	if len(one) != 1 || one[0] != "#000000" {
		t.Errorf("Blend(1) = %v", one)
	}

	colors := a.Blend(5)
	if len(colors) != 5 {
		t.Fatalf("Blend(5) returned %d colors", len(colors))
	}
	if colors[0] != "#000000" || colors[4] != "#ffffff" {
		t.Errorf("Blend endpoints = %s..%s", colors[0], colors[4])
	}
	for _, c := range colors {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("unexpected color %q", c)
		}
	}
}

func TestBlend_InvalidHexFallsBack(t *testing.T) {
	colors := Accent{From: "nope", To: "#zzzzzz"}.Blend(2)
	if len(colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(colors))
	}
}
