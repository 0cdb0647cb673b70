package view

import (
	"fmt"
	"testing"

	"calcdir/internal/catalog"
	"calcdir/internal/models"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string { return &s }

func ids(entries []models.Calculator) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func sizedCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	entries := make([]models.Calculator, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, models.Calculator{
			ID:       i,
			Title:    fmt.Sprintf("Calculator %d", i),
			Link:     fmt.Sprintf("/calc-%d", i),
			Category: []string{"Mathematics", "Health"}[i%2],
		})
	}
	c, err := catalog.New(entries)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	return c
}

func TestNew_InitialState(t *testing.T) {
	v := New(catalog.Default())
	s := v.State()

	if s.Query != "" {
		t.Errorf("Expected empty query, got %q", s.Query)
	}
	if s.SelectedCategory != nil {
		t.Errorf("Expected no category, got %q", *s.SelectedCategory)
	}
	if s.DisplayCount != 6 {
		t.Errorf("Expected displayCount 6, got %d", s.DisplayCount)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, ids(s.Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
	if !s.CanLoadMore {
		t.Error("Expected CanLoadMore with 9 entries and 6 shown")
	}
	if s.Total != 9 {
		t.Errorf("Expected total 9, got %d", s.Total)
	}
	if s.Heading() != "" {
		t.Errorf("Expected no heading, got %q", s.Heading())
	}
}

func TestLoadMore_CapsAtCatalogLength(t *testing.T) {
	v := New(catalog.Default())

	v.LoadMore()
	s := v.State()

	if s.DisplayCount != 9 {
		t.Errorf("Expected displayCount capped at 9, got %d", s.DisplayCount)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(s.Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
	if s.CanLoadMore {
		t.Error("CanLoadMore should be false at the cap")
	}

	// Idempotent at the ceiling
	v.LoadMore()
	v.LoadMore()
	if got := v.State().DisplayCount; got != 9 {
		t.Errorf("Expected displayCount to stay 9, got %d", got)
	}
}

func TestLoadMore_MonotonicSteps(t *testing.T) {
	const total = 40
	for k := 0; k <= 8; k++ {
		v := New(sizedCatalog(t, total))
		for i := 0; i < k; i++ {
			v.LoadMore()
		}
		want := min(6+6*k, total)
		if got := v.State().DisplayCount; got != want {
			t.Errorf("after %d calls: displayCount = %d, want %d", k, got, want)
		}
		if got := len(v.State().Visible); got != want {
			t.Errorf("after %d calls: %d visible, want %d", k, got, want)
		}
	}
}

func TestLoadMore_IgnoredWhileFiltered(t *testing.T) {
	v := New(catalog.Default())

	v.SetQuery("calculator")
	v.LoadMore()
	if got := v.State().DisplayCount; got != 6 {
		t.Errorf("LoadMore with query should not change displayCount, got %d", got)
	}

	v.OnNavParamChange(ptr("Health"))
	v.LoadMore()
	if got := v.State().DisplayCount; got != 6 {
		t.Errorf("LoadMore with category should not change displayCount, got %d", got)
	}
}

func TestLoadMore_SmallCatalog(t *testing.T) {
	v := New(sizedCatalog(t, 4))
	s := v.State()

	if len(s.Visible) != 4 {
		t.Errorf("Expected all 4 entries visible, got %d", len(s.Visible))
	}
	if s.CanLoadMore {
		t.Error("CanLoadMore should be false when the page exceeds the catalog")
	}

	v.LoadMore()
	if got := v.State().DisplayCount; got != 6 {
		t.Errorf("LoadMore past the cap must not shrink displayCount, got %d", got)
	}
}

func TestCategory_Mathematics(t *testing.T) {
	v := New(catalog.Default())
	v.OnNavParamChange(ptr("mathematics"))
	s := v.State()

	if diff := cmp.Diff([]int{3, 4, 6, 8, 9}, ids(s.Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
	if s.CanLoadMore {
		t.Error("CanLoadMore should be false with a category")
	}
	if s.Heading() != "mathematics Calculators" {
		t.Errorf("Heading should keep the parameter's case, got %q", s.Heading())
	}
}

func TestCategory_BypassesPagination(t *testing.T) {
	v := New(sizedCatalog(t, 30))
	v.OnNavParamChange(ptr("health"))

	if got := len(v.State().Visible); got != 15 {
		t.Errorf("Expected all 15 matches regardless of displayCount, got %d", got)
	}
}

func TestCategory_FilterIsIdempotent(t *testing.T) {
	c := catalog.Default()
	for _, cat := range c.Categories() {
		v := New(c)
		v.OnNavParamChange(ptr(cat.Name))
		first := v.State().Visible

		sub, err := catalog.New(first)
		if err != nil {
			t.Fatalf("catalog.New failed: %v", err)
		}
		again := New(sub)
		again.OnNavParamChange(ptr(cat.Name))

		if diff := cmp.Diff(first, again.State().Visible); diff != "" {
			t.Errorf("%s: refiltering changed the result (-first +again):\n%s", cat.Name, diff)
		}
	}
}

func TestCategory_UnknownYieldsEmpty(t *testing.T) {
	v := New(catalog.Default())
	v.OnNavParamChange(ptr("Astrology"))
	s := v.State()

	if !s.Empty() {
		t.Errorf("Expected no results, got %v", ids(s.Visible))
	}
	if s.Heading() != "Astrology Calculators" {
		t.Errorf("Unexpected heading %q", s.Heading())
	}
}

func TestCategory_EmptyParamMeansNone(t *testing.T) {
	v := New(catalog.Default())
	v.OnNavParamChange(ptr(""))

	if v.State().SelectedCategory != nil {
		t.Error("Empty category parameter should clear the filter")
	}
	if len(v.State().Visible) != 6 {
		t.Errorf("Expected paginated 6 entries, got %d", len(v.State().Visible))
	}
}

func TestQuery_Snow(t *testing.T) {
	v := New(catalog.Default())
	v.SetQuery("snow")

	if diff := cmp.Diff([]int{1}, ids(v.State().Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
	if v.State().CanLoadMore {
		t.Error("CanLoadMore should be false while searching")
	}
}

func TestQuery_NoFalsePositivesOrNegatives(t *testing.T) {
	c := catalog.Default()
	for _, q := range []string{"calc", "CALCULATE", "ti-84", "e", "series", "zzz", "Find"} {
		v := New(c)
		v.SetQuery(q)

		got := map[int]bool{}
		for _, e := range v.State().Visible {
			got[e.ID] = true
		}
		for _, e := range c.Entries() {
			if e.MatchesQuery(q) != got[e.ID] {
				t.Errorf("query %q: entry %d (%s) match=%v visible=%v", q, e.ID, e.Title, e.MatchesQuery(q), got[e.ID])
			}
		}
	}
}

func TestQuery_ClearingRestoresPagination(t *testing.T) {
	v := New(catalog.Default())
	v.LoadMore()
	v.SetQuery("snow")
	v.SetQuery("")

	s := v.State()
	if len(s.Visible) != 9 {
		t.Errorf("displayCount should survive a search, got %d visible", len(s.Visible))
	}
}

func TestNavChange_ResetsQuery(t *testing.T) {
	for _, category := range []*string{ptr("Health"), ptr("health"), nil} {
		v := New(catalog.Default())
		v.SetQuery("a1c")
		v.OnNavParamChange(category)

		if v.State().Query != "" {
			t.Errorf("category %v: query should be reset, got %q", category, v.State().Query)
		}
	}
}

func TestNavChange_SingleAtomicEmission(t *testing.T) {
	v := New(catalog.Default())
	v.SetQuery("snow")

	var states []ViewState
	v.Subscribe(func(s ViewState) { states = append(states, s) })
	states = nil

	v.OnNavParamChange(ptr("Health"))

	if len(states) != 1 {
		t.Fatalf("Expected exactly one emission, got %d", len(states))
	}
	s := states[0]
	if s.Query != "" || s.Category() != "Health" {
		t.Errorf("Emission paired category %q with query %q", s.Category(), s.Query)
	}
	if diff := cmp.Diff([]int{5, 7}, ids(s.Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
}

func TestNavChange_KeepsDisplayCount(t *testing.T) {
	v := New(catalog.Default())
	v.LoadMore()
	v.OnNavParamChange(ptr("Health"))
	v.OnNavParamChange(nil)

	if got := v.State().DisplayCount; got != 9 {
		t.Errorf("displayCount should not be reset by navigation, got %d", got)
	}
}

func TestNavChange_DoesNotAliasCaller(t *testing.T) {
	v := New(catalog.Default())
	category := "Health"
	v.OnNavParamChange(&category)
	category = "Mathematics"

	if got := v.State().Category(); got != "Health" {
		t.Errorf("Expected view to keep its own copy, got %q", got)
	}
}

func TestSubscribe_ReceivesEveryRecomputation(t *testing.T) {
	v := New(catalog.Default())

	var count int
	var last ViewState
	unsubscribe := v.Subscribe(func(s ViewState) {
		count++
		last = s
	})

	if count != 1 {
		t.Fatalf("Subscribe should push the current state, got %d calls", count)
	}

	v.SetQuery("s")
	v.SetQuery("sn")
	v.OnNavParamChange(nil)
	v.LoadMore()

	if count != 5 {
		t.Errorf("Expected 5 renders, got %d", count)
	}
	if last.DisplayCount != 9 {
		t.Errorf("Last render should carry displayCount 9, got %d", last.DisplayCount)
	}

	unsubscribe()
	v.SetQuery("x")
	if count != 5 {
		t.Errorf("Unsubscribed target should not be called, got %d", count)
	}
}

func TestSetCatalog_ClampsDisplayCount(t *testing.T) {
	v := New(sizedCatalog(t, 20))
	v.LoadMore()
	v.LoadMore()
	if got := v.State().DisplayCount; got != 18 {
		t.Fatalf("setup: displayCount = %d", got)
	}

	v.SetCatalog(catalog.Default())
	s := v.State()
	if s.DisplayCount != 9 {
		t.Errorf("Expected displayCount clamped to 9, got %d", s.DisplayCount)
	}
	if s.CanLoadMore {
		t.Error("CanLoadMore should be false after clamping")
	}

	v.SetCatalog(sizedCatalog(t, 3))
	if got := v.State().DisplayCount; got != 6 {
		t.Errorf("displayCount should not drop below the page size, got %d", got)
	}
}

func TestSetCatalog_KeepsFilters(t *testing.T) {
	v := New(catalog.Default())
	v.OnNavParamChange(ptr("Mathematics"))
	v.SetQuery("series")
	v.SetCatalog(catalog.Default())

	s := v.State()
	if s.Query != "series" || s.Category() != "Mathematics" {
		t.Errorf("Filters lost on catalog swap: query=%q category=%q", s.Query, s.Category())
	}
	if diff := cmp.Diff([]int{9}, ids(s.Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
}

func TestWithPageSize(t *testing.T) {
	v := New(catalog.Default(), WithPageSize(4))
	if len(v.State().Visible) != 4 {
		t.Errorf("Expected 4 visible, got %d", len(v.State().Visible))
	}
	v.LoadMore()
	if got := v.State().DisplayCount; got != 8 {
		t.Errorf("Expected displayCount 8, got %d", got)
	}

	v = New(catalog.Default(), WithPageSize(0))
	if v.PageSize() != DefaultPageSize {
		t.Errorf("Invalid page size should be ignored, got %d", v.PageSize())
	}
}

func TestResolve(t *testing.T) {
	c := sizedCatalog(t, 20)

	tests := []struct {
		name     string
		category *string
		query    string
		count    int
		wantLen  int
		wantMore bool
	}{
		{"first page", nil, "", 0, 6, true},
		{"count rounds up to a page", nil, "", 7, 12, true},
		{"count beyond catalog", nil, "", 100, 20, false},
		{"category ignores count", ptr("Health"), "", 100, 10, false},
		{"query ignores count", nil, "Calculator 1", 100, 11, false},
		{"empty category", ptr(""), "", 0, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Resolve(c, tt.category, tt.query, tt.count)
			if len(s.Visible) != tt.wantLen {
				t.Errorf("Expected %d visible, got %d", tt.wantLen, len(s.Visible))
			}
			if s.CanLoadMore != tt.wantMore {
				t.Errorf("Expected CanLoadMore=%v, got %v", tt.wantMore, s.CanLoadMore)
			}
		})
	}
}

func TestResolve_KeepsQueryWithCategory(t *testing.T) {
	s := Resolve(catalog.Default(), ptr("Mathematics"), "series", 0)
	if s.Query != "series" {
		t.Errorf("Query should survive the navigation step, got %q", s.Query)
	}
	if diff := cmp.Diff([]int{9}, ids(s.Visible)); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
}
