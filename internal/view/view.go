// Package view derives what the calculator directory shows from the current
// search query, the category taken from the page location and the
// pagination cursor.
//
// A CatalogView is driven by three events: SetQuery (user typing),
// LoadMore (user asking for more cards) and OnNavParamChange (the location's
// category parameter changed). Each event recomputes the ViewState once and
// pushes it to every subscribed render target.
package view

import (
	"calcdir/internal/catalog"
	"calcdir/internal/models"
)

// DefaultPageSize is both the initial number of cards and the load-more step.
const DefaultPageSize = 6

// ViewState is the render-ready projection of the view inputs.
type ViewState struct {
	Query            string
	SelectedCategory *string
	DisplayCount     int
	Visible          []models.Calculator
	CanLoadMore      bool
	Total            int // catalog size
}

// Filtered reports whether a query or a category restricts the result.
func (s ViewState) Filtered() bool {
	return s.Query != "" || s.SelectedCategory != nil
}

// Empty reports whether nothing matches; renderers show a "no results" state.
func (s ViewState) Empty() bool {
	return len(s.Visible) == 0
}

// Heading returns the "<category> Calculators" title, or "" without a category.
func (s ViewState) Heading() string {
	if s.SelectedCategory == nil {
		return ""
	}
	return *s.SelectedCategory + " Calculators"
}

// Category returns the selected category or "".
func (s ViewState) Category() string {
	if s.SelectedCategory == nil {
		return ""
	}
	return *s.SelectedCategory
}

// RenderFunc receives every recomputed state.
type RenderFunc func(ViewState)

// Option configures a CatalogView.
type Option func(*CatalogView)

// WithPageSize overrides the page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(v *CatalogView) {
		if n > 0 {
			v.pageSize = n
		}
	}
}

// CatalogView holds the mutable inputs of the directory page.
// It is not safe for concurrent use; callers serialize events.
type CatalogView struct {
	catalog  *catalog.Catalog
	pageSize int

	query        string
	category     *string
	displayCount int

	state       ViewState
	subscribers map[int]RenderFunc
	nextSubID   int
}

// New creates a view over c with no query, no category and one page shown.
func New(c *catalog.Catalog, opts ...Option) *CatalogView {
	v := &CatalogView{
		catalog:     c,
		pageSize:    DefaultPageSize,
		subscribers: make(map[int]RenderFunc),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.displayCount = v.pageSize
	v.state = v.derive()
	return v
}

// Subscribe registers a render target and immediately sends it the current
// state. The returned func removes the subscription.
func (v *CatalogView) Subscribe(fn RenderFunc) func() {
	id := v.nextSubID
	v.nextSubID++
	v.subscribers[id] = fn
	fn(v.state)
	return func() { delete(v.subscribers, id) }
}

// State returns the latest derived state.
func (v *CatalogView) State() ViewState {
	return v.state
}

// Catalog returns the catalog the view projects.
func (v *CatalogView) Catalog() *catalog.Catalog {
	return v.catalog
}

// PageSize returns the load-more step.
func (v *CatalogView) PageSize() int {
	return v.pageSize
}

// SetQuery replaces the search query.
func (v *CatalogView) SetQuery(q string) {
	v.query = q
	v.recompute()
}

// LoadMore grows the page by one step, capped at the catalog size.
// It does nothing while a query or category is active, or at the cap.
func (v *CatalogView) LoadMore() {
	if v.query != "" || v.category != nil {
		return
	}
	total := v.catalog.Len()
	if v.displayCount >= total {
		return
	}
	v.displayCount = min(v.displayCount+v.pageSize, total)
	v.recompute()
}

// OnNavParamChange applies a new category from the location and clears the
// query in the same step, so no state pairs the new category with the old query.
// nil or an empty string means no category.
func (v *CatalogView) OnNavParamChange(category *string) {
	v.category = normalizeCategory(category)
	v.query = ""
	v.recompute()
}

// SetCatalog swaps the underlying catalog, keeping query and category.
// When the catalog shrank below the cursor, the cursor drops to the larger of
// the new length and one page, the same floor New starts from.
func (v *CatalogView) SetCatalog(c *catalog.Catalog) {
	v.catalog = c
	if v.displayCount > c.Len() {
		v.displayCount = max(c.Len(), v.pageSize)
	}
	v.recompute()
}

// Resolve replays stateless inputs, such as a request URL, against a fresh
// view: the category arrives as a navigation, then the query is applied, then
// load-more steps run until count cards are shown or loading stops.
func Resolve(c *catalog.Catalog, category *string, query string, count int, opts ...Option) ViewState {
	v := New(c, opts...)
	v.OnNavParamChange(category)
	v.SetQuery(query)
	for v.state.CanLoadMore && v.state.DisplayCount < count {
		v.LoadMore()
	}
	return v.state
}

func (v *CatalogView) recompute() {
	v.state = v.derive()
	for _, fn := range v.subscribers {
		fn(v.state)
	}
}

func (v *CatalogView) derive() ViewState {
	total := v.catalog.Len()
	s := ViewState{
		Query:            v.query,
		SelectedCategory: copyCategory(v.category),
		DisplayCount:     v.displayCount,
		Total:            total,
	}

	if v.query != "" || v.category != nil {
		s.Visible = v.catalog.Filter(v.category, v.query)
	} else {
		s.Visible = v.catalog.Head(min(v.displayCount, total))
	}

	s.CanLoadMore = v.query == "" && v.category == nil && v.displayCount < total
	return s
}

func normalizeCategory(category *string) *string {
	if category == nil || *category == "" {
		return nil
	}
	return copyCategory(category)
}

func copyCategory(category *string) *string {
	if category == nil {
		return nil
	}
	c := *category
	return &c
}
