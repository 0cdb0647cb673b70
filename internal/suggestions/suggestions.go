// Package suggestions proposes next steps when the directory shows no calculators.
package suggestions

import (
	"fmt"
	"net/url"
	"strings"

	"calcdir/internal/catalog"
	"calcdir/internal/models"
	"calcdir/internal/nav"
	"calcdir/internal/view"

	"github.com/sahilm/fuzzy"
)

// SuggestionType represents the type of suggestion
type SuggestionType int

const (
	// TypeNone means the view has results
	TypeNone SuggestionType = iota
	// TypeUnknownCategory means the selected category has no calculators
	TypeUnknownCategory
	// TypeOtherCategories means the query matches outside the selected category
	TypeOtherCategories
	// TypeCloseMatches means the query has near misses
	TypeCloseMatches
	// TypeNoMatch means nothing resembles the query
	TypeNoMatch
)

// String returns the string representation of the suggestion type
func (t SuggestionType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeUnknownCategory:
		return "unknown_category"
	case TypeOtherCategories:
		return "other_categories"
	case TypeCloseMatches:
		return "close_matches"
	case TypeNoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// Action represents a suggested action
type Action struct {
	Key   string // TUI key (e.g. "esc", "a")
	Label string // Display label
	Href  string // Landing page address doing the same
}

// Suggestion represents a hint for an empty result
type Suggestion struct {
	Type    SuggestionType
	Message string
	Actions []Action
	Matches []models.Calculator // calculators worth a look
}

// IsEmpty returns true if there's nothing to suggest
func (s *Suggestion) IsEmpty() bool {
	return s == nil || s.Type == TypeNone
}

// String renders the message and match titles on one line
func (s *Suggestion) String() string {
	if s.IsEmpty() {
		return ""
	}
	if len(s.Matches) == 0 {
		return s.Message
	}
	titles := make([]string, len(s.Matches))
	for i, m := range s.Matches {
		titles[i] = m.Title
	}
	return s.Message + ": " + strings.Join(titles, ", ")
}

// DefaultLimit caps the number of suggested calculators
const DefaultLimit = 3

// Analyzer looks at an empty view state and generates suggestions
type Analyzer struct {
	catalog *catalog.Catalog
	limit   int
}

// NewAnalyzer creates a new suggestion analyzer
func NewAnalyzer(c *catalog.Catalog) *Analyzer {
	return &Analyzer{catalog: c, limit: DefaultLimit}
}

// Analyze returns a suggestion for st. States with results get TypeNone.
func (a *Analyzer) Analyze(st view.ViewState) *Suggestion {
	if !st.Empty() {
		return &Suggestion{Type: TypeNone}
	}

	// Priority: unknown category > matches elsewhere > near misses > nothing
	if st.SelectedCategory != nil && len(a.catalog.Filter(st.SelectedCategory, "")) == 0 {
		return a.unknownCategorySuggestion(*st.SelectedCategory)
	}

	if st.Query == "" {
		return &Suggestion{Type: TypeNone}
	}

	if st.SelectedCategory != nil {
		if elsewhere := a.catalog.Filter(nil, st.Query); len(elsewhere) > 0 {
			return a.otherCategoriesSuggestion(st, elsewhere)
		}
	}

	if near := a.closeMatches(st.SelectedCategory, st.Query); len(near) > 0 {
		return &Suggestion{
			Type:    TypeCloseMatches,
			Message: "Did you mean",
			Matches: near,
			Actions: []Action{clearSearch(st)},
		}
	}

	return &Suggestion{
		Type:    TypeNoMatch,
		Message: fmt.Sprintf("Nothing resembles '%s'", st.Query),
		Actions: []Action{clearSearch(st)},
	}
}

// unknownCategorySuggestion points at the closest existing category
func (a *Analyzer) unknownCategorySuggestion(category string) *Suggestion {
	names := make([]string, 0, len(a.catalog.Categories()))
	for _, c := range a.catalog.Categories() {
		names = append(names, c.Name)
	}

	s := &Suggestion{
		Type:    TypeUnknownCategory,
		Message: fmt.Sprintf("No category named '%s'", category),
	}
	if found := fuzzy.Find(category, names); len(found) > 0 {
		best := found[0].Str
		s.Actions = append(s.Actions, Action{Label: "Go to " + best, Href: nav.CategoryHref(best)})
	}
	s.Actions = append(s.Actions, Action{Key: "0", Label: "All calculators", Href: "/"})
	return s
}

// otherCategoriesSuggestion offers to repeat the search without the category
func (a *Analyzer) otherCategoriesSuggestion(st view.ViewState, elsewhere []models.Calculator) *Suggestion {
	msg := fmt.Sprintf("%d matches in other categories", len(elsewhere))
	if len(elsewhere) == 1 {
		msg = "1 match in another category"
	}
	return &Suggestion{
		Type:    TypeOtherCategories,
		Message: msg,
		Matches: elsewhere[:min(len(elsewhere), a.limit)],
		Actions: []Action{
			{Key: "a", Label: "Search all categories", Href: "/?" + url.Values{"q": {st.Query}}.Encode()},
			clearSearch(st),
		},
	}
}

// closeMatches ranks titles containing the query's letters in order
func (a *Analyzer) closeMatches(category *string, query string) []models.Calculator {
	candidates := a.catalog.Filter(category, "")
	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}

	var out []models.Calculator
	for _, m := range fuzzy.Find(query, titles) {
		out = append(out, candidates[m.Index])
		if len(out) == a.limit {
			break
		}
	}
	return out
}

func clearSearch(st view.ViewState) Action {
	return Action{Key: "esc", Label: "Clear search", Href: nav.CategoryHref(st.Category())}
}
