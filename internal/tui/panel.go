package tui

import (
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// panelCacheEntry holds pre-loaded content for a file.
type panelCacheEntry struct {
	content string
	lines   []string
	err     error
}

// Panel auto-visibility constants.
const (
	panelAutoThreshold = 90
	panelMinWidth      = 60
	panelMaxCacheSize  = 200
)

// filePanel holds the state for the preview panel.
type filePanel struct {
	visible        bool
	manualOverride bool

	viewport      viewport.Model
	viewportReady bool

	currentPath string
	loading     bool

	cache map[string]panelCacheEntry

	// Layout invalidation tracking.
	lastWidth int
}

// newFilePanel creates a zero-value panel with an initialised cache.
func newFilePanel(mode string) filePanel {
	p := filePanel{
		cache: make(map[string]panelCacheEntry, 32),
	}
	switch mode {
	case "show":
		p.manualOverride = true
		p.visible = true
	case "hide":
		p.manualOverride = true
		p.visible = false
	}
	return p
}

// shouldShow returns true if the panel should render at the given terminal width.
func (p *filePanel) shouldShow(termWidth int) bool {
	if termWidth < panelMinWidth {
		return false
	}
	if p.manualOverride {
		return p.visible
	}
	return termWidth >= panelAutoThreshold
}

// toggle flips the panel visibility manually.
func (p *filePanel) toggle(termWidth int) {
	if !p.manualOverride {
		p.manualOverride = true
		// First toggle: invert what auto-mode would do.
		p.visible = termWidth < panelAutoThreshold
	} else {
		p.visible = !p.visible
	}
}

// panelWidthFor computes the standard side-panel width (40%, min 30).
func panelWidthFor(width int) int {
	return max(width*40/100, 30)
}

// clearCache empties the content cache.
func (p *filePanel) clearCache() {
	p.cache = make(map[string]panelCacheEntry, 32)
}

// cacheGet returns a cached entry and true if found.
func (p *filePanel) cacheGet(path string) (panelCacheEntry, bool) {
	e, ok := p.cache[path]
	return e, ok
}

// cachePut stores a content entry. Go maps have no insertion order, so the
// whole cache is dropped once it grows past the cap.
func (p *filePanel) cachePut(path string, entry panelCacheEntry) {
	if len(p.cache) >= panelMaxCacheSize {
		p.clearCache()
	}
	p.cache[path] = entry
}

// ensureViewport creates or resizes the viewport to the given dimensions.
func (p *filePanel) ensureViewport(width, height int) {
	if !p.viewportReady || p.lastWidth != width {
		p.viewport = viewport.New()
		p.viewport.SetWidth(width)
		p.viewport.SetHeight(height)
		p.viewportReady = true
		p.lastWidth = width
	}
	if p.viewport.Height() != height {
		p.viewport.SetHeight(height)
	}
}

// --- Panel lifecycle on the model ---

// panelContentWidth is the text width inside the panel border and padding.
func (m Model) panelContentWidth() int {
	return max(panelWidthFor(m.effectiveWidth())-4, 20)
}

// panelLoadForCursor shows the cached preview of the cursor item or starts
// loading it.
func (m Model) panelLoadForCursor() (Model, tea.Cmd) {
	if !m.panel.shouldShow(m.effectiveWidth()) {
		return m, nil
	}
	path := m.currentPath()
	if path == "" {
		m.panel.currentPath = ""
		m.panel.loading = false
		return m.syncPanelViewportContent(), nil
	}
	m.panel.currentPath = path
	if _, ok := m.panel.cacheGet(path); ok {
		m.panel.loading = false
		return m.syncPanelViewportContent(), nil
	}
	m.panel.loading = true
	return m.syncPanelViewportContent(), loadPanelContentCmd(path)
}

func (m Model) handlePanelContentLoaded(msg panelContentLoadedMsg) (tea.Model, tea.Cmd) {
	entry := panelCacheEntry{err: msg.err}
	if msg.err == nil {
		entry.content = highlightCode(msg.content, msg.path)
		entry.lines = strings.Split(entry.content, "\n")
	}
	m.panel.cachePut(msg.path, entry)
	if msg.path == m.panel.currentPath {
		m.panel.loading = false
		m = m.syncPanelViewportContent()
	}
	return m, nil
}

// syncPanelViewportContent sizes the viewport to the list area and fills it
// with the current preview.
func (m Model) syncPanelViewportContent() Model {
	width := m.panelContentWidth()
	m.panel.ensureViewport(width, max(1, m.listHeight()-1))
	m.panel.viewport.SetContent(m.panelViewportContent(width))
	m.panel.viewport.GotoTop()
	return m
}

func (m Model) panelViewportContent(width int) string {
	switch {
	case m.panel.currentPath == "":
		return activeTheme.DimText.Render("Nothing selected")
	case m.panel.loading:
		return activeTheme.DimText.Render("Loading…")
	}
	entry, ok := m.panel.cacheGet(m.panel.currentPath)
	if !ok {
		return ""
	}
	if entry.err != nil {
		return activeTheme.ErrorText.Render(visualTruncate(entry.err.Error(), width))
	}
	lines := make([]string, len(entry.lines))
	for i, l := range entry.lines {
		lines[i] = visualTruncate(strings.ReplaceAll(l, "\t", "    "), width)
	}
	return strings.Join(lines, "\n")
}

// --- Panel rendering ---

// renderFilePanel renders the right-side preview panel.
func (m Model) renderFilePanel(width int) string {
	contentWidth := m.panelContentWidth()

	var b strings.Builder
	b.WriteString(m.renderPanelTitleBar(contentWidth))
	b.WriteString("\n")
	if m.panel.viewportReady {
		b.WriteString(m.panel.viewport.View())
	} else {
		b.WriteString(m.panelViewportContent(contentWidth))
	}
	return activeTheme.Panel.Width(width).Height(m.listHeight()).MaxHeight(m.listHeight()).Render(b.String())
}

func (m Model) renderPanelTitleBar(width int) string {
	if m.panel.currentPath == "" {
		return activeTheme.PanelTitle.Render("Preview")
	}
	name := filepath.Base(m.panel.currentPath)
	badge := ""
	if lexer := detectLexer(name, ""); lexer != nil {
		badge = " [" + strings.ToLower(lexer.Config().Name) + "]"
	}
	titleWidth := max(width-ansi.StringWidth(badge), 1)
	return activeTheme.PanelTitle.Render(visualTruncate(name, titleWidth)) + activeTheme.DimText.Render(badge)
}
