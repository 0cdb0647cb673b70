package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"calcdir/internal/browser"
	"calcdir/internal/catalog"
	"calcdir/internal/config"
	"calcdir/internal/nav"
	"calcdir/internal/suggestions"
	"calcdir/internal/ui"
	"calcdir/internal/ui/components"
	"calcdir/internal/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenMain
	ScreenHelp
)

// Fixed rows around the card grid: hero (3), search box (3), status, help bar and spacing.
const chromeHeight = 11

// Messages
type catalogLoadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

type catalogReloadedMsg struct {
	reload  catalog.Reload
	watched bool // delivered by the file watcher, re-arm it
}

type calculatorOpenedMsg struct {
	url string
	err error
}

// Model is the main application model
type Model struct {
	config  *config.Config
	logger  *zap.Logger
	view    *view.CatalogView
	router  *nav.Router
	opener  browser.Opener
	reloads <-chan catalog.Reload
	advisor *suggestions.Analyzer

	// UI Components
	header    *components.Header
	grid      *components.CardGrid
	spinner   spinner.Model
	progress  progress.Model
	help      help.Model
	helpVP    viewport.Model
	keys      ui.KeyMap
	textInput textinput.Model

	// State
	state       view.ViewState // last state pushed by the view
	suggestion  *suggestions.Suggestion
	screen      Screen
	searchMode  bool
	status      string
	width       int
	height      int
	unsubscribe func()
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithOpener sets the opener used for "Open Calculator".
func WithOpener(o browser.Opener) Option {
	return func(m *Model) { m.opener = o }
}

// WithReloads delivers catalog reloads from a file watcher.
func WithReloads(ch <-chan catalog.Reload) Option {
	return func(m *Model) { m.reloads = ch }
}

// WithStart sets the initial location, e.g. "/?category=Health".
func WithStart(location string) Option {
	return func(m *Model) { m.router = nav.NewRouter(location) }
}

// New creates the model. The catalog is loaded by Init.
func New(cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.ProgressStyle

	prog := progress.New(
		progress.WithGradient(string(ui.Primary), string(ui.Secondary)),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	ti := textinput.New()
	ti.Placeholder = "Search calculators..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 0
	ti.Width = 40

	m := &Model{
		config:    cfg,
		logger:    zap.NewNop(),
		router:    nav.NewRouter("/"),
		header:    components.NewHeader(nil),
		grid:      components.NewCardGrid(),
		spinner:   s,
		progress:  prog,
		help:      help.New(),
		keys:      ui.DefaultKeyMap(),
		textInput: ti,
		screen:    ScreenLoading,
		status:    "Loading calculators...",
		width:     96,
		height:    32,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.updateSizes()
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadCatalog}
	if m.reloads != nil {
		cmds = append(cmds, waitForReload(m.reloads))
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadCatalog() tea.Msg {
	c, err := catalog.Load(m.config.CatalogPath)
	return catalogLoadedMsg{catalog: c, err: err}
}

func (m *Model) reloadCatalog() tea.Msg {
	c, err := catalog.Load(m.config.CatalogPath)
	return catalogReloadedMsg{reload: catalog.Reload{Catalog: c, Err: err}}
}

func waitForReload(ch <-chan catalog.Reload) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return catalogReloadedMsg{reload: r, watched: true}
	}
}

func (m *Model) openCalculator(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if opener == nil {
			return calculatorOpenedMsg{url: url, err: fmt.Errorf("no browser opener available")}
		}
		return calculatorOpenedMsg{url: url, err: opener.Open(url)}
	}
}

// attach wires the catalog view to the router and the renderer.
// It runs once, when the first catalog arrives.
func (m *Model) attach(c *catalog.Catalog) {
	m.view = view.New(c, view.WithPageSize(m.config.PageSize))
	m.advisor = suggestions.NewAnalyzer(c)
	m.header.Categories = c.Categories()
	m.unsubscribe = m.view.Subscribe(m.render)
	m.router.OnChange(func(loc nav.Location) {
		m.view.OnNavParamChange(loc.Category())
	})
	m.screen = ScreenMain
}

// Close detaches the model from its view.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// render is the view's render target
func (m *Model) render(s view.ViewState) {
	prev := m.state
	m.state = s

	if s.Query != prev.Query || s.Category() != prev.Category() {
		m.grid.GoToFirst()
	}
	m.grid.SetCards(s.Visible)
	m.grid.Heading = s.Heading()
	m.grid.CanLoadMore = s.CanLoadMore
	m.header.Active = s.Category()

	m.suggestion = nil
	m.grid.Hint = ""
	if m.advisor != nil {
		if sg := m.advisor.Analyze(s); !sg.IsEmpty() {
			m.suggestion = sg
			m.grid.Hint = renderSuggestion(sg)
		}
	}

	// Navigation clears the query; keep the search box in step.
	if m.textInput.Value() != s.Query {
		m.textInput.SetValue(s.Query)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if m.screen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case catalogLoadedMsg:
		if m.view != nil {
			// A watcher reload got here first.
			return m, nil
		}
		c := msg.catalog
		if msg.err != nil {
			m.logger.Warn("catalog load failed, using built-in catalog",
				zap.String("path", m.config.CatalogPath), zap.Error(msg.err))
			c = catalog.Default()
		}
		m.attach(c)
		m.updateSizes()
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v (showing built-in catalog)", msg.err)
		} else {
			m.status = fmt.Sprintf("Loaded %d calculators", c.Len())
		}

	case catalogReloadedMsg:
		m.applyReload(msg.reload)
		if msg.watched {
			cmds = append(cmds, waitForReload(m.reloads))
		}

	case calculatorOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("open failed", zap.String("url", msg.url), zap.Error(msg.err))
			m.status = fmt.Sprintf("Error: could not open %s: %v", msg.url, msg.err)
		} else {
			m.status = "✓ Opened " + msg.url
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) applyReload(r catalog.Reload) {
	if r.Err != nil {
		m.logger.Warn("catalog reload failed", zap.Error(r.Err))
		m.status = fmt.Sprintf("Error: reload failed: %v", r.Err)
		return
	}
	if m.view == nil {
		m.attach(r.Catalog)
	} else {
		m.header.Categories = r.Catalog.Categories()
		m.advisor = suggestions.NewAnalyzer(r.Catalog)
		m.view.SetCatalog(r.Catalog)
	}
	m.updateSizes()
	m.logger.Info("catalog reloaded", zap.Int("calculators", r.Catalog.Len()))
	m.status = fmt.Sprintf("✓ Reloaded %d calculators", r.Catalog.Len())
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case ScreenHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.screen = ScreenMain
			return m, nil
		}
		// Forward to viewport for scrolling
		var cmd tea.Cmd
		m.helpVP, cmd = m.helpVP.Update(msg)
		return m, cmd
	}

	if m.searchMode {
		return m.handleSearchKeys(msg)
	}
	return m.handleMainKeys(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.screen = ScreenHelp
		m.helpVP = viewport.New(m.width-4, m.height-4)
		m.helpVP.SetContent(m.renderHelp())
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.textInput.SetValue(m.state.Query)
		m.textInput.CursorEnd()
		m.status = "Type to search, enter to keep, esc to cancel"
		return m, m.textInput.Focus()

	case key.Matches(msg, m.keys.Escape):
		// Esc: drop the query first, then the category
		if m.state.Query != "" {
			m.view.SetQuery("")
			m.status = "Search cleared"
		} else if m.state.SelectedCategory != nil {
			m.navigate("/")
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.grid.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveDown()
	case key.Matches(msg, m.keys.Left):
		m.grid.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.grid.MoveRight()
	case key.Matches(msg, m.keys.Home):
		m.grid.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.grid.GoToLast()

	case key.Matches(msg, m.keys.Open):
		calc, ok := m.grid.Current()
		if !ok {
			return m, nil
		}
		url := m.config.CalculatorURL(calc.Link)
		m.status = "Opening " + url
		return m, m.openCalculator(url)

	case key.Matches(msg, m.keys.LoadMore):
		return m.handleLoadMore()

	case key.Matches(msg, m.keys.NextTab):
		m.navigate(nav.CategoryHref(m.header.Next()))
	case key.Matches(msg, m.keys.PrevTab):
		m.navigate(nav.CategoryHref(m.header.Prev()))
	case key.Matches(msg, m.keys.AllTab):
		m.navigate("/")
	case key.Matches(msg, m.keys.Category):
		i, _ := strconv.Atoi(msg.String())
		name, ok := m.header.CategoryAt(i)
		if !ok {
			m.status = fmt.Sprintf("No category %d", i)
			return m, nil
		}
		m.navigate(nav.CategoryHref(name))

	case key.Matches(msg, m.keys.Back):
		if _, ok := m.router.Back(); !ok {
			m.status = "No previous page"
			return m, nil
		}
		m.status = "Back to " + m.router.Current().String()

	case key.Matches(msg, m.keys.SearchAll):
		if m.suggestion == nil || m.suggestion.Type != suggestions.TypeOtherCategories {
			return m, nil
		}
		q := m.state.Query
		m.navigate("/")
		m.view.SetQuery(q)
		m.status = fmt.Sprintf("ℹ Searching all categories for %q", q)

	case key.Matches(msg, m.keys.Reload):
		if m.config.CatalogPath == "" {
			m.status = "Using the built-in catalog, nothing to reload"
			return m, nil
		}
		m.status = "ℹ Reloading " + m.config.CatalogPath
		return m, m.reloadCatalog
	}

	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancel search, restore the unfiltered list
		m.searchMode = false
		m.textInput.Blur()
		m.view.SetQuery("")
		m.status = "Search cancelled"
		return m, nil

	case tea.KeyEnter:
		// Confirm search
		m.searchMode = false
		m.textInput.Blur()
		if m.state.Query == "" {
			m.status = fmt.Sprintf("Showing %d of %d calculators", len(m.state.Visible), m.state.Total)
		} else {
			m.status = fmt.Sprintf("%d calculators matching '%s'", len(m.state.Visible), m.state.Query)
		}
		return m, nil

	case tea.KeyUp:
		m.grid.MoveUp()
		return m, nil

	case tea.KeyDown:
		m.grid.MoveDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		if q := m.textInput.Value(); q != m.state.Query {
			m.view.SetQuery(q)
		}
		return m, cmd
	}
}

func (m *Model) handleLoadMore() (tea.Model, tea.Cmd) {
	if !m.state.CanLoadMore {
		if m.state.Filtered() {
			m.status = "Showing every match; clear the search or category to page"
		} else {
			m.status = "All calculators are shown"
		}
		return m, nil
	}
	m.view.LoadMore()
	m.status = fmt.Sprintf("Showing %d of %d calculators", len(m.state.Visible), m.state.Total)
	return m, nil
}

// navigate moves the router; the view follows through its listener.
func (m *Model) navigate(location string) {
	loc := m.router.Navigate(location)
	if c := loc.Category(); c != nil {
		m.status = fmt.Sprintf("%s: %d calculators", *c, len(m.state.Visible))
	} else {
		m.status = fmt.Sprintf("Showing %d of %d calculators", len(m.state.Visible), m.state.Total)
	}
	m.logger.Debug("navigate", zap.String("location", loc.String()))
}

func (m *Model) updateSizes() {
	m.header.Width = m.width - 2
	headerHeight := lipgloss.Height(m.header.View())
	m.grid.SetSize(m.width-2, max(m.height-chromeHeight-headerHeight, 7))
	m.textInput.Width = min(48, max(10, m.width-12))
	m.help.Width = m.width - 2
	if m.screen == ScreenHelp {
		m.helpVP.Width = m.width - 4
		m.helpVP.Height = m.height - 4
	}
}

func (m *Model) View() string {
	switch m.screen {
	case ScreenLoading:
		return m.renderLoading()
	case ScreenHelp:
		return ui.AppStyle.Render(m.helpVP.View() + "\n" +
			ui.HelpBarStyle.Render(ui.RenderHelpItem("esc/?", "close help")+"  "+ui.RenderHelpItem("↑/↓", "scroll")))
	default:
		return m.renderMain()
	}
}

func (m *Model) renderLoading() string {
	content := m.spinner.View() + " " + m.status
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.renderHero())
	b.WriteString("\n")
	b.WriteString(m.grid.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(ui.HelpBarStyle.Render(m.help.View(m.keys)))

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHero() string {
	width := m.width - 2
	title := ui.HeroTitleStyle.Render("Calculate Anything")
	subtitle := ui.HeroSubtitleStyle.Render("Explore our vast collection of online calculators")

	boxStyle := ui.SearchBoxStyle
	if m.searchMode {
		boxStyle = ui.ActiveSearchBoxStyle
	}
	search := boxStyle.Render(m.textInput.View())

	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, title),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, subtitle),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, search),
	)
}

func (m *Model) renderStatusBar() string {
	var meter string
	if m.state.Filtered() {
		meter = fmt.Sprintf("%d matching", len(m.state.Visible))
	} else {
		var percent float64
		if m.state.Total > 0 {
			percent = float64(len(m.state.Visible)) / float64(m.state.Total)
		}
		meter = m.progress.ViewAs(percent) + " " +
			fmt.Sprintf("Showing %d of %d", len(m.state.Visible), m.state.Total)
	}

	// Style status message based on content
	styledStatus := ui.StatusTextStyle.Render(m.status)
	if strings.HasPrefix(m.status, "✓") {
		styledStatus = ui.RenderNotification("success", strings.TrimPrefix(m.status, "✓ "))
	} else if strings.HasPrefix(m.status, "ℹ") {
		styledStatus = ui.RenderNotification("info", strings.TrimPrefix(m.status, "ℹ "))
	} else if strings.HasPrefix(m.status, "Error") {
		styledStatus = ui.RenderNotification("error", m.status)
	}

	return ui.StatusBarStyle.Render(styledStatus + "  •  " + meter)
}

// renderSuggestion formats an empty-state hint with its key actions.
func renderSuggestion(sg *suggestions.Suggestion) string {
	var b strings.Builder
	b.WriteString(sg.String())
	var actions []string
	for _, a := range sg.Actions {
		if a.Key == "" {
			continue
		}
		actions = append(actions, ui.RenderHelpItem(a.Key, a.Label))
	}
	if len(actions) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(actions, "  •  "))
	}
	return b.String()
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(ui.HeadingStyle.Render("⌨️  Keyboard Shortcuts"))
	b.WriteString("\n")

	sections := []string{"Cards", "Categories", "Search", "General"}
	for i, group := range m.keys.FullHelp() {
		if i < len(sections) {
			b.WriteString(ui.DividerStyle.Render("  ─── " + sections[i] + " ───"))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				ui.HelpKeyStyle.Width(14).Render(h.Key),
				ui.HelpDescStyle.Render(h.Desc),
			))
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.MutedStyle.Render("  Opening a calculator uses " + m.config.BaseURL))
	b.WriteString("\n")
	b.WriteString(ui.FooterStyle.Render("  © 2024 Houseofcalculators.com. All rights reserved."))
	return b.String()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
