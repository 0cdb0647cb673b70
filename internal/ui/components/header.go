package components

import (
	"fmt"
	"strings"

	"calcdir/internal/models"
	"calcdir/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// Brand is the site name shown at the top of every screen.
const Brand = "🧮 House of Calculators"

// Header renders the brand and the category navigation bar.
// Each tab corresponds to a link to "/?category=<name>"; tab 0 is "/".
type Header struct {
	Categories []models.Category
	Active     string // selected category, "" for all
	Width      int
}

// NewHeader creates a header for the given categories
func NewHeader(categories []models.Category) *Header {
	return &Header{Categories: categories, Width: 96}
}

// ActiveIndex returns the tab index of the active category: 0 for all,
// 1..n for categories, -1 when the active category is not in the list.
func (h *Header) ActiveIndex() int {
	if h.Active == "" {
		return 0
	}
	for i, c := range h.Categories {
		if models.SameCategory(c.Name, h.Active) {
			return i + 1
		}
	}
	return -1
}

// CategoryAt returns the category for tab index i (0 is all).
func (h *Header) CategoryAt(i int) (string, bool) {
	if i == 0 {
		return "", true
	}
	if i < 0 || i > len(h.Categories) {
		return "", false
	}
	return h.Categories[i-1].Name, true
}

// Next returns the category after the active one, wrapping around
func (h *Header) Next() string {
	return h.step(1)
}

// Prev returns the category before the active one, wrapping around
func (h *Header) Prev() string {
	return h.step(-1)
}

func (h *Header) step(delta int) string {
	n := len(h.Categories) + 1
	i := h.ActiveIndex()
	if i < 0 {
		i = 0
	}
	name, _ := h.CategoryAt(((i+delta)%n + n) % n)
	return name
}

// View renders the header
func (h *Header) View() string {
	active := h.ActiveIndex()

	tabs := []string{h.renderTab(0, "All", active == 0)}
	for i, c := range h.Categories {
		label := fmt.Sprintf("%s (%d)", c.Name, c.Count)
		tabs = append(tabs, h.renderTab(i+1, label, active == i+1))
	}

	brand := ui.BrandStyle.Render(Brand)
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(brand)+lipgloss.Width(bar)+2 <= h.Width {
		gap := h.Width - lipgloss.Width(brand) - lipgloss.Width(bar)
		return brand + strings.Repeat(" ", gap) + bar
	}
	return brand + "\n" + bar
}

func (h *Header) renderTab(i int, label string, active bool) string {
	text := label
	if i <= 9 {
		text = fmt.Sprintf("%d %s", i, label)
	}
	if active {
		return ui.ActiveTabStyle.Render(text)
	}
	return ui.TabStyle.Render(text)
}
