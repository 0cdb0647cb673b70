package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestColors(t *testing.T) {
	colors := []lipgloss.Color{
		Primary, Secondary, Success, Warning, Error,
		Muted, Background, Surface, Foreground, Border, Highlight,
	}

	for _, c := range colors {
		if c == "" {
			t.Error("Color should not be empty")
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"AppStyle":          AppStyle,
		"HeroTitleStyle":    HeroTitleStyle,
		"HeroSubtitleStyle": HeroSubtitleStyle,
		"BrandStyle":        BrandStyle,
		"TabStyle":          TabStyle,
		"ActiveTabStyle":    ActiveTabStyle,
		"SearchBoxStyle":    SearchBoxStyle,
		"HeadingStyle":      HeadingStyle,
		"CardStyle":         CardStyle,
		"ActiveCardStyle":   ActiveCardStyle,
		"CardTitleStyle":    CardTitleStyle,
		"CardDescStyle":     CardDescStyle,
		"EmptyStyle":        EmptyStyle,
		"StatusBarStyle":    StatusBarStyle,
		"HelpBarStyle":      HelpBarStyle,
		"FooterStyle":       FooterStyle,
	}

	for name, style := range styles {
		if !strings.Contains(style.Render("content"), "content") {
			t.Errorf("%s should render its content", name)
		}
	}
}

func TestRenderHelpItem(t *testing.T) {
	item := RenderHelpItem("q", "quit")
	if !strings.Contains(item, "q") || !strings.Contains(item, "quit") {
		t.Errorf("RenderHelpItem should contain key and description, got %q", item)
	}
}

func TestRenderNotification(t *testing.T) {
	tests := []struct {
		msgType string
		icon    string
	}{
		{"success", "✓"},
		{"error", "✗"},
		{"info", "ℹ"},
		{"unknown", "•"},
	}

	for _, tt := range tests {
		t.Run(tt.msgType, func(t *testing.T) {
			result := RenderNotification(tt.msgType, "message")
			if !strings.Contains(result, tt.icon) || !strings.Contains(result, "message") {
				t.Errorf("RenderNotification(%q) = %q", tt.msgType, result)
			}
		})
	}
}

func TestRenderButton(t *testing.T) {
	if !strings.Contains(RenderButton("Load More", false), "Load More") {
		t.Error("RenderButton should contain its label")
	}
	if !strings.Contains(RenderButton("Load More", true), "Load More") {
		t.Error("RenderButton should contain its label")
	}
}

func TestAccentBar(t *testing.T) {
	if AccentBar("from-blue-500 to-blue-600", 0) != "" {
		t.Error("AccentBar with zero width should be empty")
	}

	bar := AccentBar("from-blue-500 to-blue-600", 12)
	if got := strings.Count(bar, "▀"); got != 12 {
		t.Errorf("Expected 12 cells, got %d", got)
	}
	if lipgloss.Width(bar) != 12 {
		t.Errorf("Expected printable width 12, got %d", lipgloss.Width(bar))
	}
}

func TestAccentColor(t *testing.T) {
	if got := AccentColor("from-red-500 to-red-600"); got != lipgloss.Color("#EF4444") {
		t.Errorf("AccentColor = %q", got)
	}
}
