// Package catalog holds the immutable list of calculators shown by the directory.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"calcdir/internal/models"
)

// Catalog is an ordered, validated, read-only set of calculators.
// Entries are kept in ascending ID order.
type Catalog struct {
	entries    []models.Calculator
	categories []models.Category
	byID       map[int]int
}

// New validates entries and builds a catalog ordered by ID.
func New(entries []models.Calculator) (*Catalog, error) {
	sorted := make([]models.Calculator, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if errs := Validate(sorted); len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}

	c := &Catalog{
		entries: sorted,
		byID:    make(map[int]int, len(sorted)),
	}

	counts := make(map[string]int)
	for i, e := range sorted {
		c.byID[e.ID] = i
		key := strings.ToLower(e.Category)
		if _, seen := counts[key]; !seen {
			c.categories = append(c.categories, models.Category{Name: e.Category})
		}
		counts[key]++
	}
	for i := range c.categories {
		c.categories[i].Count = counts[strings.ToLower(c.categories[i].Name)]
	}

	return c, nil
}

// Validate checks entries for internal consistency.
// Returns every problem found (empty slice if valid).
func Validate(entries []models.Calculator) []error {
	var errs []error

	ids := make(map[int]bool, len(entries))
	categories := make(map[string]string)

	for i, e := range entries {
		if e.ID <= 0 {
			errs = append(errs, fmt.Errorf("calculators[%d]: id must be positive, got %d", i, e.ID))
		} else if ids[e.ID] {
			errs = append(errs, fmt.Errorf("calculators[%d]: duplicate id %d", i, e.ID))
		}
		ids[e.ID] = true

		if e.Title == "" {
			errs = append(errs, fmt.Errorf("calculator %d: title is required", e.ID))
		}
		if e.Link == "" {
			errs = append(errs, fmt.Errorf("calculator %d: link is required", e.ID))
		}
		if e.Category == "" {
			errs = append(errs, fmt.Errorf("calculator %d: category is required", e.ID))
			continue
		}

		key := strings.ToLower(e.Category)
		if prev, ok := categories[key]; ok && prev != e.Category {
			errs = append(errs, fmt.Errorf("calculator %d: category %q differs only by case from %q", e.ID, e.Category, prev))
			continue
		}
		categories[key] = e.Category
	}

	return errs
}

// Len returns the number of calculators.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all calculators in catalog order.
func (c *Catalog) Entries() []models.Calculator {
	out := make([]models.Calculator, len(c.entries))
	copy(out, c.entries)
	return out
}

// Head returns the first n calculators, clamped to the catalog length.
func (c *Catalog) Head(n int) []models.Calculator {
	n = min(max(n, 0), len(c.entries))
	out := make([]models.Calculator, n)
	copy(out, c.entries[:n])
	return out
}

// Get looks up a calculator by ID.
func (c *Catalog) Get(id int) (models.Calculator, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Calculator{}, false
	}
	return c.entries[i], true
}

// Categories returns the distinct categories in order of first appearance.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Filter returns the calculators matching both the category (nil skips the
// check, comparison ignores case) and the query (matched against title and
// description, ignoring case). Catalog order is preserved.
func (c *Catalog) Filter(category *string, query string) []models.Calculator {
	result := make([]models.Calculator, 0, len(c.entries))
	for _, e := range c.entries {
		if category != nil && !e.InCategory(*category) {
			continue
		}
		if !e.MatchesQuery(query) {
			continue
		}
		result = append(result, e)
	}
	return result
}
