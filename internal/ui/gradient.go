package ui

import (
	"strings"

	"calcdir/internal/accent"

	"github.com/charmbracelet/lipgloss"
)

// AccentBar renders the card's top stripe: a width-wide gradient between the
// two stops of the color token.
func AccentBar(token string, width int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	for _, c := range accent.Parse(token).Blend(width) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("▀"))
	}
	return b.String()
}

// AccentColor returns the first stop of the color token, for borders and icons.
func AccentColor(token string) lipgloss.Color {
	return lipgloss.Color(accent.Parse(token).From)
}
