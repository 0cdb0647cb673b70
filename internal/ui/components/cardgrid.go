package components

import (
	"fmt"
	"strings"

	"calcdir/internal/models"
	"calcdir/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	cardHeight   = 7 // border + accent + title + category + description + button
	minCardWidth = 30
)

// EmptyMessage is shown when no calculator matches the filters.
const EmptyMessage = "No calculators found. Try another search or category."

// CardGrid lays calculators out as a grid of cards
type CardGrid struct {
	Cards       []models.Calculator
	Cursor      int
	Width       int
	Height      int
	Focused     bool
	Heading     string // "<category> Calculators", empty for none
	CanLoadMore bool
	Hint        string // shown under the empty state
}

// NewCardGrid creates an empty grid
func NewCardGrid() *CardGrid {
	return &CardGrid{
		Width:   96,
		Height:  24,
		Focused: true,
	}
}

// SetCards replaces the cards, keeping the cursor in range
func (g *CardGrid) SetCards(cards []models.Calculator) {
	g.Cards = cards
	if g.Cursor >= len(cards) {
		g.Cursor = max(0, len(cards)-1)
	}
}

// SetSize updates the grid dimensions
func (g *CardGrid) SetSize(width, height int) {
	g.Width = width
	g.Height = height
}

// Columns returns the number of cards per row for the current width:
// one on narrow terminals, two on medium, three on wide ones.
func (g *CardGrid) Columns() int {
	switch {
	case g.Width >= 3*minCardWidth+6:
		return 3
	case g.Width >= 2*minCardWidth+3:
		return 2
	default:
		return 1
	}
}

// CardWidth returns the outer width of one card
func (g *CardGrid) CardWidth() int {
	cols := g.Columns()
	w := (g.Width - 3*(cols-1)) / cols
	return max(w, minCardWidth)
}

// MoveUp moves the cursor one row up
func (g *CardGrid) MoveUp() {
	if g.Cursor-g.Columns() >= 0 {
		g.Cursor -= g.Columns()
	}
}

// MoveDown moves the cursor one row down, stopping on the last card
func (g *CardGrid) MoveDown() {
	if len(g.Cards) == 0 {
		return
	}
	g.Cursor = min(g.Cursor+g.Columns(), len(g.Cards)-1)
}

// MoveLeft moves the cursor to the previous card
func (g *CardGrid) MoveLeft() {
	if g.Cursor > 0 {
		g.Cursor--
	}
}

// MoveRight moves the cursor to the next card
func (g *CardGrid) MoveRight() {
	if g.Cursor < len(g.Cards)-1 {
		g.Cursor++
	}
}

// GoToFirst moves cursor to the first card
func (g *CardGrid) GoToFirst() {
	g.Cursor = 0
}

// GoToLast moves cursor to the last card
func (g *CardGrid) GoToLast() {
	if len(g.Cards) > 0 {
		g.Cursor = len(g.Cards) - 1
	}
}

// Current returns the calculator under the cursor
func (g *CardGrid) Current() (models.Calculator, bool) {
	if len(g.Cards) > 0 && g.Cursor < len(g.Cards) {
		return g.Cards[g.Cursor], true
	}
	return models.Calculator{}, false
}

// View renders the heading, the visible rows of cards and the load-more button
func (g *CardGrid) View() string {
	var b strings.Builder

	if g.Heading != "" {
		b.WriteString(ui.HeadingStyle.Render(g.Heading))
		b.WriteString("\n")
	}

	if len(g.Cards) == 0 {
		b.WriteString(ui.EmptyStyle.Render(EmptyMessage))
		if g.Hint != "" {
			b.WriteString("\n")
			b.WriteString(ui.MutedStyle.PaddingLeft(2).Render(g.Hint))
		}
		return b.String()
	}

	cols := g.Columns()
	rows := (len(g.Cards) + cols - 1) / cols
	visibleRows := max(1, g.gridHeight()/cardHeight)

	// Keep the cursor row on screen
	cursorRow := g.Cursor / cols
	startRow := 0
	if cursorRow >= visibleRows {
		startRow = cursorRow - visibleRows + 1
	}
	endRow := min(startRow+visibleRows, rows)

	if startRow > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for row := startRow; row < endRow; row++ {
		var cells []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(g.Cards) {
				break
			}
			if col > 0 {
				cells = append(cells, "   ")
			}
			cells = append(cells, g.renderCard(g.Cards[i], i == g.Cursor && g.Focused))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if row < endRow-1 {
			b.WriteString("\n")
		}
	}

	if endRow < rows {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(g.Cards)-endRow*cols)))
	}

	if g.CanLoadMore {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(g.Width, lipgloss.Center, ui.RenderButton("Load More (m)", true)))
	}

	return b.String()
}

func (g *CardGrid) gridHeight() int {
	h := g.Height
	if g.Heading != "" {
		h -= 2
	}
	if g.CanLoadMore {
		h -= 2
	}
	return h
}

// renderCard renders a single calculator card
func (g *CardGrid) renderCard(calc models.Calculator, active bool) string {
	width := g.CardWidth()
	inner := width - 4

	icon := calc.Icon
	if icon == "" {
		icon = "🧮"
	}
	titleMax := inner - runewidth.StringWidth(icon) - 1
	title := runewidth.Truncate(calc.Title, titleMax, "…")
	desc := runewidth.Truncate(calc.Description, inner, "…")
	category := runewidth.Truncate(calc.Category, inner, "…")

	button := ui.RenderButton("Open Calculator", active)

	content := strings.Join([]string{
		ui.AccentBar(calc.Color, inner),
		icon + " " + ui.CardTitleStyle.Render(title),
		ui.CardCategoryStyle.Render(category),
		ui.CardDescStyle.Render(desc),
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, button),
	}, "\n")

	style := ui.CardStyle
	if active {
		style = ui.ActiveCardStyle.BorderForeground(ui.AccentColor(calc.Color))
	}
	return style.Width(width - 2).Render(content)
}
