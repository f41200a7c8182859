package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// ── List Bindings ──────────────────────────────────────────────────

type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	NextSect key.Binding
	PrevSect key.Binding
	Filter   key.Binding
	Sections key.Binding
	Panel    key.Binding
	Preview  key.Binding
	Open     key.Binding
	Edit     key.Binding
	Reload   key.Binding
	Mouse    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var listKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "Move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "Move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "Prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "Next column"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "Jump top"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "Jump bottom"),
	),
	HalfDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "Half page down"),
	),
	HalfUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "Half page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("C-f", "Page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("C-b", "Page up"),
	),
	NextSect: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "Next section"),
	),
	PrevSect: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "Prev section"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "Filter"),
	),
	Sections: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Jump to section"),
	),
	Panel: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "Toggle preview"),
	),
	Preview: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Preview"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "Open"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "Edit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Reload"),
	),
	Mouse: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "Mouse/copy mode"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Filter, k.Sections, k.Panel, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		{k.HalfDown, k.HalfUp, k.PageDown, k.PageUp, k.NextSect, k.PrevSect},
		{k.Filter, k.Sections, k.Panel, k.Preview, k.Open, k.Edit},
		{k.Reload, k.Mouse, k.Help, k.Quit},
	}
}

// ── Filter Bindings ────────────────────────────────────────────────

type FilterKeyMap struct {
	Cancel key.Binding
	Accept key.Binding
}

var filterKeys = FilterKeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Clear filter"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Keep filter"),
	),
}

// ── Panel Bindings ─────────────────────────────────────────────────

type PanelKeyMap struct {
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Back       key.Binding
}

var panelKeys = PanelKeyMap{
	ScrollDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "Scroll preview down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "Scroll preview up"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Clear message"),
	),
}

// ── Key repeat ─────────────────────────────────────────────────────

const repeatNavigationStep = 3

// navigationStepForKey moves faster while a navigation key is held down.
func navigationStepForKey(msg tea.KeyPressMsg) int {
	if msg.IsRepeat {
		return repeatNavigationStep
	}
	return 1
}
