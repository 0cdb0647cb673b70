// Package web serves the calculator directory as an HTML landing page and a
// small JSON API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"calcdir/internal/accent"
	"calcdir/internal/catalog"
	"calcdir/internal/models"
	"calcdir/internal/suggestions"
	"calcdir/internal/nav"
	"calcdir/internal/view"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var indexHTML string

//go:embed static
var staticFiles embed.FS

// Query parameters read by the landing page besides nav.CategoryParam.
const (
	QueryParam = "q"
	CountParam = "count"
)

type Config struct {
	Catalog   *catalog.Catalog
	LinkFor   func(link string) string // maps a calculator link to its href; identity when nil
	PageSize  int
	CacheSize int
	Logger    *zap.Logger
}

// Server renders directory pages. The catalog can be swapped while serving.
type Server struct {
	logger   *zap.Logger
	pageSize int
	linkFor  func(string) string
	tmpl     *template.Template
	cache    *lru.Cache[string, []byte]

	mu         sync.RWMutex
	catalog    *catalog.Catalog
	generation uint64
}

func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = view.DefaultPageSize
	}
	if cfg.CacheSize < 1 {
		cfg.CacheSize = 128
	}
	if cfg.LinkFor == nil {
		cfg.LinkFor = func(link string) string { return link }
	}

	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"categoryHref": nav.CategoryHref,
	}).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	cache, err := lru.New[string, []byte](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	return &Server{
		logger:   cfg.Logger,
		pageSize: cfg.PageSize,
		linkFor:  cfg.LinkFor,
		tmpl:     tmpl,
		cache:    cache,
		catalog:  cfg.Catalog,
	}, nil
}

// SetCatalog replaces the served catalog and drops every cached page.
func (s *Server) SetCatalog(c *catalog.Catalog) {
	s.mu.Lock()
	s.catalog = c
	s.generation++
	s.mu.Unlock()
	s.cache.Purge()
}

// Follow applies catalog reloads until updates is closed or ctx is done.
// Failed reloads keep the current catalog.
func (s *Server) Follow(ctx context.Context, updates <-chan catalog.Reload) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-updates:
			if !ok {
				return
			}
			if r.Err != nil {
				s.logger.Warn("keeping previous catalog", zap.Error(r.Err))
				continue
			}
			s.SetCatalog(r.Catalog)
			s.logger.Info("catalog swapped", zap.Int("calculators", r.Catalog.Len()))
		}
	}
}

func (s *Server) snapshot() (*catalog.Catalog, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.generation
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/calculators", s.handleCalculators)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return withSecurityHeaders(s.withLogging(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("serving calculator directory", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// pageRequest is the part of a request that determines the rendered state.
type pageRequest struct {
	category *string
	query    string
	count    int
}

func parsePageRequest(r *http.Request) pageRequest {
	loc := nav.Location{Path: r.URL.Path, Params: r.URL.Query()}
	pr := pageRequest{
		category: loc.Category(),
		query:    loc.Params.Get(QueryParam),
	}
	if n, err := strconv.Atoi(loc.Params.Get(CountParam)); err == nil && n > 0 {
		pr.count = n
	}
	return pr
}

// key identifies a rendered page. Text fields are quoted so no separator
// inside a category or query can make two requests collide.
func (p pageRequest) key(generation uint64) string {
	cat := "-"
	if p.category != nil {
		cat = strconv.Quote(*p.category)
	}
	return fmt.Sprintf("%d|%s|%q|%d", generation, cat, p.query, p.count)
}

func (s *Server) state(c *catalog.Catalog, p pageRequest) view.ViewState {
	return view.Resolve(c, p.category, p.query, p.count, view.WithPageSize(s.pageSize))
}

type cardModel struct {
	models.Calculator
	Href  string
	Style template.CSS
}

type categoryModel struct {
	models.Category
	Active bool
}

type indexModel struct {
	Query        string
	Category     string
	Heading      string
	Categories   []categoryModel
	AllActive    bool
	Cards        []cardModel
	Shown        int
	Total        int
	CanLoadMore  bool
	LoadMoreHref string
	Suggestion   *suggestionModel
}

type suggestionModel struct {
	Message string
	Matches []cardModel
	Actions []suggestions.Action
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c, gen := s.snapshot()
	p := parsePageRequest(r)
	key := p.key(gen)

	if page, ok := s.cache.Get(key); ok {
		writeHTML(w, page)
		return
	}

	st := s.state(c, p)
	var buf strings.Builder
	if err := s.tmpl.Execute(&buf, s.indexModel(c, st)); err != nil {
		s.logger.Error("render failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	page := []byte(buf.String())
	s.cache.Add(key, page)
	writeHTML(w, page)
}

func (s *Server) indexModel(c *catalog.Catalog, st view.ViewState) indexModel {
	m := indexModel{
		Query:       st.Query,
		Category:    st.Category(),
		Heading:     st.Heading(),
		AllActive:   st.SelectedCategory == nil,
		Shown:       len(st.Visible),
		Total:       st.Total,
		CanLoadMore: st.CanLoadMore,
	}
	for _, cat := range c.Categories() {
		m.Categories = append(m.Categories, categoryModel{
			Category: cat,
			Active:   st.SelectedCategory != nil && models.SameCategory(cat.Name, *st.SelectedCategory),
		})
	}
	for _, calc := range st.Visible {
		a := accent.Parse(calc.Color)
		m.Cards = append(m.Cards, cardModel{
			Calculator: calc,
			Href:       s.linkFor(calc.Link),
			// From and To are validated hex colors.
			Style: template.CSS(fmt.Sprintf("background: linear-gradient(to right, %s, %s)", a.From, a.To)),
		})
	}
	if st.CanLoadMore {
		next := min(st.DisplayCount+s.pageSize, st.Total)
		m.LoadMoreHref = "/?" + CountParam + "=" + strconv.Itoa(next)
	}
	if sg := suggestions.NewAnalyzer(c).Analyze(st); !sg.IsEmpty() {
		m.Suggestion = &suggestionModel{Message: sg.Message, Actions: sg.Actions}
		for _, calc := range sg.Matches {
			m.Suggestion.Matches = append(m.Suggestion.Matches, cardModel{Calculator: calc, Href: s.linkFor(calc.Link)})
		}
	}
	return m
}

// StateResponse is the JSON form of a view state.
type StateResponse struct {
	Query        string                        `json:"query"`
	Category     *string                       `json:"category"`
	DisplayCount int                           `json:"displayCount"`
	CanLoadMore  bool                          `json:"canLoadMore"`
	Total        int                           `json:"total"`
	Calculators  []models.CalculatorDefinition `json:"calculators"`
}

// NewStateResponse converts a view state for JSON output.
func NewStateResponse(st view.ViewState) StateResponse {
	resp := StateResponse{
		Query:        st.Query,
		Category:     st.SelectedCategory,
		DisplayCount: st.DisplayCount,
		CanLoadMore:  st.CanLoadMore,
		Total:        st.Total,
		Calculators:  make([]models.CalculatorDefinition, 0, len(st.Visible)),
	}
	for _, calc := range st.Visible {
		resp.Calculators = append(resp.Calculators, calc.Definition())
	}
	return resp
}

func (s *Server) handleCalculators(w http.ResponseWriter, r *http.Request) {
	c, _ := s.snapshot()
	s.writeJSON(w, NewStateResponse(s.state(c, parsePageRequest(r))))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	c, _ := s.snapshot()
	s.writeJSON(w, c.Categories())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write json failed", zap.Error(err))
	}
}

func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
