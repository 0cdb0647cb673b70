package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the app
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Home        key.Binding
	End         key.Binding
	NextTab     key.Binding // Next category
	PrevTab     key.Binding // Previous category
	AllTab      key.Binding // Back to all calculators
	Category    key.Binding // Jump to category by number
	Search      key.Binding // Focus the search box
	Open        key.Binding // Open the calculator under the cursor
	LoadMore    key.Binding
	Back        key.Binding // Previous location
	SearchAll   key.Binding // Repeat the search without the category
	Reload      key.Binding // Reload catalog file
	Help        key.Binding
	Quit        key.Binding
	Escape      key.Binding
	Confirm     key.Binding // Leave search box keeping the query
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next category"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev category"),
		),
		AllTab: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all calculators"),
		),
		Category: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "category"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter/o", "open calculator"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m", "+"),
			key.WithHelp("m", "load more"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b", "back"),
		),
		SearchAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "search all categories"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload catalog"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filters"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
	}
}

// ShortHelp returns keybindings to show in short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextTab, k.Open, k.LoadMore, k.Help, k.Quit}
}

// FullHelp returns all keybindings for full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Grid navigation
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		// Categories & history
		{k.NextTab, k.PrevTab, k.AllTab, k.Category, k.Back},
		// Search & results
		{k.Search, k.Confirm, k.Escape, k.SearchAll, k.LoadMore, k.Open},
		// General
		{k.Reload, k.Help, k.Quit},
	}
}
