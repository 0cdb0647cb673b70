package models

import "strings"

// Calculator is one entry of the calculator directory
type Calculator struct {
	ID          int    // Unique identifier, default ordering key
	Title       string // Display name
	Description string // One-line summary
	Icon        string // Emoji glyph
	Color       string // Accent token, e.g. "from-blue-500 to-blue-600"
	Link        string // Path to the calculator page
	Category    string // Mathematics, Health, Engineering, ...
}

// Category groups calculators sharing a label
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CalculatorDefinition is the YAML structure for a calculator entry
type CalculatorDefinition struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
	Link        string `yaml:"link" json:"link"`
	Category    string `yaml:"category" json:"category"`
}

// CatalogFile is the root YAML structure
type CatalogFile struct {
	Calculators []CalculatorDefinition `yaml:"calculators"`
}

// NewCalculator creates a Calculator from its definition
func NewCalculator(def CalculatorDefinition) Calculator {
	return Calculator{
		ID:          def.ID,
		Title:       strings.TrimSpace(def.Title),
		Description: strings.TrimSpace(def.Description),
		Icon:        strings.TrimSpace(def.Icon),
		Color:       strings.TrimSpace(def.Color),
		Link:        strings.TrimSpace(def.Link),
		Category:    strings.TrimSpace(def.Category),
	}
}

// Definition converts the calculator back to its YAML form
func (c Calculator) Definition() CalculatorDefinition {
	return CalculatorDefinition{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		Link:        c.Link,
		Category:    c.Category,
	}
}

// InCategory reports whether the calculator belongs to category, ignoring case
func (c Calculator) InCategory(category string) bool {
	return SameCategory(c.Category, category)
}

// SameCategory compares category names by their lower-case forms, the same
// rule catalog validation uses to reject case collisions.
func SameCategory(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// title or the description. An empty query matches everything.
func (c Calculator) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q)
}
