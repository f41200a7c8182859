package tui

import (
	"log/slog"
	"os"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/stickit/internal/catalog"
	"github.com/daptify14/stickit/internal/floating"
	"github.com/daptify14/stickit/internal/layout"
)

// --- Model ---

// Model is the main TUI model: a sectioned list whose section headers float
// at the top of the list area while their section scrolls by.
type Model struct {
	view Screen
	opts Options
	root string
	home string // for display only
	gen  uint64 // generation counter for stale async message detection

	flow    *layout.Flow
	engine  *floating.Engine
	headers headerCache

	list   listState
	walk   walkState
	picker pickerState
	panel  filePanel

	filterInput textinput.Model
	help        help.Model

	iconMode IconMode

	width  int
	height int

	ui       uiState
	debugLog *slog.Logger
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "/ "
	s := ti.Styles()
	s.Focused.Prompt = activeTheme.Prompt
	s.Blurred.Prompt = activeTheme.Prompt
	ti.SetStyles(s)
	ti.CharLimit = 120
	ti.SetWidth(40)
	return ti
}

// NewModel creates a list model with the given options. With a preloaded
// catalog the list is ready immediately; otherwise Init starts a walk of
// opts.Root.
func NewModel(opts Options) Model {
	metrics := opts.Metrics
	if metrics == (layout.Metrics{}) {
		metrics = layout.DefaultMetrics()
	}

	iconMode := opts.IconMode
	if iconMode == "" {
		iconMode = IconModeNerdFont
	}

	themeLocked := false
	switch strings.ToLower(opts.ThemeMode) {
	case "dark":
		SetTheme(ThemeDark())
		themeLocked = true
	case "light":
		SetTheme(ThemeLight())
		themeLocked = true
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	home, _ := os.UserHomeDir()

	flow := layout.NewFlow(metrics, nil)
	engine := floating.New(flow, floating.WithLogger(opts.DebugLog))

	m := Model{
		view:        ListScreen,
		opts:        opts,
		root:        root,
		home:        home,
		flow:        flow,
		engine:      engine,
		headers:     newHeaderCache(),
		panel:       newFilePanel(opts.PanelMode),
		filterInput: newFilterInput(),
		help:        help.New(),
		iconMode:    iconMode,
		debugLog:    opts.DebugLog,
		ui: uiState{
			loadingSpinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
			mouseCapture:   true,
			themeLocked:    themeLocked,
		},
	}

	if opts.Catalog != nil {
		if opts.Catalog.Root != "" {
			m.root = opts.Catalog.Root
		}
		m.setCatalog(*opts.Catalog)
	} else {
		m.ui.loading = true
		m.relayout()
	}
	return m
}

// Init implements tea.Model by returning the initial command batch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.RequestBackgroundColor}
	if m.ui.loading {
		cmds = append(cmds, m.ui.loadingSpinner.Tick, m.walkCmd())
	}
	return tea.Batch(cmds...)
}

// setCatalog replaces the loaded catalog and reapplies the current filter.
func (m *Model) setCatalog(c catalog.Catalog) {
	m.list.full = c
	m.applyFilter()
}

// applyFilter rebuilds the visible catalog from the full one and the filter
// query. The content changes, so the layout is rebuilt from scratch and the
// list returns to the top.
func (m *Model) applyFilter() {
	m.list.visible = catalog.Filter(m.list.full, m.filterInput.Value())
	m.list.order = m.list.order[:0:0]
	for s, sec := range m.list.visible.Sections {
		for i := range sec.Items {
			m.list.order = append(m.list.order, itemRef{section: s, item: i})
		}
	}
	m.list.cursor = 0
	m.list.offset = 0

	m.flow.SetCounts(m.list.visible.Counts())
	m.relayout()
	m.syncBounds()
}

// restyleFilterInputForTheme updates the filter input prompt styles to match
// the current activeTheme without resetting its value, focus, or cursor state.
func (m *Model) restyleFilterInputForTheme() {
	s := m.filterInput.Styles()
	s.Focused.Prompt = activeTheme.Prompt
	s.Blurred.Prompt = activeTheme.Prompt
	m.filterInput.SetStyles(s)
}

// nextGen increments the generation counter, used when reloading data.
func (m *Model) nextGen() {
	m.gen++
}

func (m *Model) toggleMouseCapture() {
	m.ui.mouseCapture = !m.ui.mouseCapture
	if m.ui.mouseCapture {
		m.ui.message = "Mouse capture enabled (wheel + click)"
		return
	}
	m.ui.message = "Mouse capture disabled (drag to select/copy)"
}

// currentItem returns the item under the cursor.
func (m Model) currentItem() (catalog.Item, bool) {
	ref, ok := m.list.current()
	if !ok {
		return catalog.Item{}, false
	}
	return m.list.visible.Item(ref.section, ref.item)
}

// currentPath returns the absolute path of the item under the cursor.
func (m Model) currentPath() string {
	it, ok := m.currentItem()
	if !ok {
		return ""
	}
	return m.list.visible.ResolvePath(it)
}
