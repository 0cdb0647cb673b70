package suggestions

import (
	"testing"

	"calcdir/internal/catalog"
	"calcdir/internal/view"
)

func ptr(s string) *string { return &s }

func analyze(category *string, query string) *Suggestion {
	c := catalog.Default()
	st := view.Resolve(c, category, query, 0)
	return NewAnalyzer(c).Analyze(st)
}

func TestSuggestionTypeString(t *testing.T) {
	tests := []struct {
		typ      SuggestionType
		expected string
	}{
		{TypeNone, "none"},
		{TypeUnknownCategory, "unknown_category"},
		{TypeOtherCategories, "other_categories"},
		{TypeCloseMatches, "close_matches"},
		{TypeNoMatch, "no_match"},
		{SuggestionType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("SuggestionType(%d).String() = %s, want %s", tt.typ, got, tt.expected)
		}
	}
}

func TestSuggestionIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		s        *Suggestion
		expected bool
	}{
		{"nil", nil, true},
		{"none", &Suggestion{Type: TypeNone}, true},
		{"no match", &Suggestion{Type: TypeNoMatch}, false},
	}

	for _, tt := range tests {
		if got := tt.s.IsEmpty(); got != tt.expected {
			t.Errorf("%s: IsEmpty() = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestAnalyze_ResultsNeedNoSuggestion(t *testing.T) {
	if s := analyze(nil, ""); !s.IsEmpty() {
		t.Errorf("Expected no suggestion, got %v", s.Type)
	}
	if s := analyze(ptr("Health"), "a1c"); !s.IsEmpty() {
		t.Errorf("Expected no suggestion, got %v", s.Type)
	}
}

func TestAnalyze_UnknownCategory(t *testing.T) {
	s := analyze(ptr("Mathematic"), "")

	if s.Type != TypeUnknownCategory {
		t.Fatalf("Expected TypeUnknownCategory, got %v", s.Type)
	}
	if len(s.Actions) != 2 {
		t.Fatalf("Expected 2 actions, got %d", len(s.Actions))
	}
	if s.Actions[0].Href != "/?category=Mathematics" {
		t.Errorf("Expected link to Mathematics, got %q", s.Actions[0].Href)
	}
	if s.Actions[1].Href != "/" {
		t.Errorf("Expected link to all calculators, got %q", s.Actions[1].Href)
	}
}

func TestAnalyze_UnknownCategoryWithoutNearName(t *testing.T) {
	s := analyze(ptr("Astrology"), "")

	if s.Type != TypeUnknownCategory {
		t.Fatalf("Expected TypeUnknownCategory, got %v", s.Type)
	}
	if len(s.Actions) != 1 || s.Actions[0].Key != "0" {
		t.Errorf("Expected only the all-calculators action, got %+v", s.Actions)
	}
}

func TestAnalyze_OtherCategories(t *testing.T) {
	s := analyze(ptr("Mathematics"), "a1c")

	if s.Type != TypeOtherCategories {
		t.Fatalf("Expected TypeOtherCategories, got %v", s.Type)
	}
	if len(s.Matches) != 1 || s.Matches[0].Title != "A1C Calculator" {
		t.Errorf("Unexpected matches %+v", s.Matches)
	}
	if s.Actions[0].Key != "a" || s.Actions[0].Href != "/?q=a1c" {
		t.Errorf("Unexpected search-all action %+v", s.Actions[0])
	}
	if s.Actions[1].Href != "/?category=Mathematics" {
		t.Errorf("Clear search should keep the category, got %q", s.Actions[1].Href)
	}
	if s.String() != "1 match in another category: A1C Calculator" {
		t.Errorf("Unexpected String() %q", s.String())
	}
}

func TestAnalyze_CloseMatches(t *testing.T) {
	s := analyze(nil, "mdpt")

	if s.Type != TypeCloseMatches {
		t.Fatalf("Expected TypeCloseMatches, got %v", s.Type)
	}
	if len(s.Matches) != 1 || s.Matches[0].Title != "Midpoint Calculator" {
		t.Errorf("Unexpected matches %+v", s.Matches)
	}
	if s.Actions[0].Href != "/" {
		t.Errorf("Clear search without category should go home, got %q", s.Actions[0].Href)
	}
}

func TestAnalyze_CloseMatchesAreLimited(t *testing.T) {
	s := analyze(nil, "clcltr")

	if s.Type != TypeCloseMatches {
		t.Fatalf("Expected TypeCloseMatches, got %v", s.Type)
	}
	if len(s.Matches) != DefaultLimit {
		t.Errorf("Expected %d matches, got %d", DefaultLimit, len(s.Matches))
	}
}

func TestAnalyze_NoMatch(t *testing.T) {
	s := analyze(nil, "zzz")

	if s.Type != TypeNoMatch {
		t.Fatalf("Expected TypeNoMatch, got %v", s.Type)
	}
	if s.String() != "Nothing resembles 'zzz'" {
		t.Errorf("Unexpected String() %q", s.String())
	}
}
