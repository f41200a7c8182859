package tui

import (
	"fmt"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/stickit/internal/layout"
)

// Update implements tea.Model by dispatching messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logMsg(msg)

	var cmd tea.Cmd

	// Terminal background detection is cross-cutting and must be processed
	// before view-specific routing (including picker-form routing).
	if bgMsg, ok := msg.(tea.BackgroundColorMsg); ok {
		if !m.ui.themeLocked {
			SetTheme(ThemeForBackground(bgMsg.IsDark()))
			m.help.Styles = help.DefaultStyles(bgMsg.IsDark())
			m.restyleFilterInputForTheme()
			m.headers.clear()
			m.syncBounds()
		}
		return m, nil
	}

	if _, ok := msg.(tea.WindowSizeMsg); !ok && m.view == PickerScreen {
		return m.handlePickerUpdate(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case spinner.TickMsg:
		if m.ui.loading {
			m.ui.loadingSpinner, cmd = m.ui.loadingSpinner.Update(msg)
			return m, cmd
		}
	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)
	case panelContentLoadedMsg:
		return m.handlePanelContentLoaded(msg)
	case editorDoneMsg:
		if msg.err != nil {
			m.ui.message = fmt.Sprintf("Editor failed: %v", msg.err)
			return m, nil
		}
		delete(m.panel.cache, msg.path)
		m, cmd = m.panelLoadForCursor()
		return m, cmd
	case openDoneMsg:
		if msg.err != nil {
			m.ui.message = fmt.Sprintf("Open failed: %v", msg.err)
		}
		return m, nil

	// Input messages
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		return m.handleKeyMsg(msg)
	}

	if m.filterInput.Focused() {
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.SetWidth(msg.Width)
	m.filterInput.SetWidth(max(10, msg.Width-4))
	m.syncBounds()
	if m.panel.shouldShow(m.width) {
		return m.panelLoadForCursor()
	}
	return m, nil
}

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.ui.loading = false
	m.walk.cancel = nil
	m.walk.lastMetrics = msg.metrics
	if msg.err != nil {
		m.ui.message = fmt.Sprintf("Walk failed: %v", msg.err)
	} else if msg.metrics.Terminated == "max-items" {
		m.ui.message = fmt.Sprintf("Showing the first %d items", msg.metrics.Items)
	}
	m.setCatalog(msg.catalog)
	return m.panelLoadForCursor()
}

// --- Root key gate ---

func (m Model) handleKeyMsg(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.filterInput.Focused() {
		return m.handleFilterKeys(msg)
	}

	switch {
	case key.Matches(msg, listKeys.Quit):
		if m.walk.cancel != nil {
			m.walk.cancel()
		}
		return m, tea.Quit
	case key.Matches(msg, listKeys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncBounds()
		return m, nil
	case key.Matches(msg, listKeys.Mouse):
		m.toggleMouseCapture()
		return m, nil
	case key.Matches(msg, panelKeys.Back):
		m.ui.message = ""
		return m, nil
	case key.Matches(msg, listKeys.Filter):
		m.ui.message = ""
		return m, m.filterInput.Focus()
	case key.Matches(msg, listKeys.Reload):
		if m.opts.Catalog != nil {
			m.ui.message = "Manifest catalogs are not reloaded"
			return m, nil
		}
		m.nextGen()
		m.ui.loading = true
		m.panel.clearCache()
		return m, tea.Batch(m.ui.loadingSpinner.Tick, m.walkCmd())
	case key.Matches(msg, listKeys.Sections):
		return m.openSectionPicker()
	case key.Matches(msg, listKeys.Panel):
		m.panel.toggle(m.effectiveWidth())
		m.syncBounds()
		m.ensureCursorVisible()
		return m.panelLoadForCursor()
	case key.Matches(msg, listKeys.Preview):
		if !m.panel.shouldShow(m.effectiveWidth()) {
			m.panel.manualOverride = true
			m.panel.visible = true
			m.syncBounds()
			m.ensureCursorVisible()
		}
		if !m.panel.shouldShow(m.effectiveWidth()) {
			m.ui.message = "Terminal too narrow for preview"
			return m, nil
		}
		return m.panelLoadForCursor()
	case key.Matches(msg, listKeys.Open):
		path := m.currentPath()
		if path == "" {
			return m, nil
		}
		if c := fileManagerCapability(); !c.Available {
			m.ui.message = "Open unavailable: " + c.Reason
			return m, nil
		}
		return m, openCmd(path)
	case key.Matches(msg, listKeys.Edit):
		path := m.currentPath()
		if path == "" {
			return m, nil
		}
		return m, m.editCmd(path)
	case key.Matches(msg, panelKeys.ScrollDown):
		if m.panel.viewportReady {
			m.panel.viewport.ScrollDown(navigationStepForKey(msg))
		}
		return m, nil
	case key.Matches(msg, panelKeys.ScrollUp):
		if m.panel.viewportReady {
			m.panel.viewport.ScrollUp(navigationStepForKey(msg))
		}
		return m, nil
	}

	return m.handleNavigationKeys(msg)
}

// handleNavigationKeys moves the cursor or the content offset.
func (m Model) handleNavigationKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	total := len(m.list.order)
	if total == 0 {
		return m, nil
	}
	halfRows := max(1, m.listHeight()/2)
	before := m.list.cursor

	switch {
	case key.Matches(msg, listKeys.Down):
		m.list.cursor = m.cursorByRows(navigationStepForKey(msg))
	case key.Matches(msg, listKeys.Up):
		m.list.cursor = m.cursorByRows(-navigationStepForKey(msg))
	case key.Matches(msg, listKeys.Right):
		m.list.cursor = min(total-1, m.list.cursor+1)
	case key.Matches(msg, listKeys.Left):
		m.list.cursor = max(0, m.list.cursor-1)
	case key.Matches(msg, listKeys.HalfDown):
		m.list.offset += halfRows
		m.list.cursor = m.cursorByRows(halfRows)
	case key.Matches(msg, listKeys.HalfUp):
		m.list.offset -= halfRows
		m.list.cursor = m.cursorByRows(-halfRows)
	case key.Matches(msg, listKeys.PageDown):
		m.list.offset += m.listHeight()
		m.list.cursor = m.cursorByRows(m.listHeight())
	case key.Matches(msg, listKeys.PageUp):
		m.list.offset -= m.listHeight()
		m.list.cursor = m.cursorByRows(-m.listHeight())
	case key.Matches(msg, listKeys.Home):
		m.list.offset = 0
		m.list.cursor = 0
	case key.Matches(msg, listKeys.End):
		m.list.offset = m.maxOffset()
		m.list.cursor = total - 1
	case key.Matches(msg, listKeys.NextSect):
		return m.jumpToSection(m.currentSection() + 1)
	case key.Matches(msg, listKeys.PrevSect):
		return m.jumpToSection(m.currentSection() - 1)
	default:
		return m, nil
	}

	m.syncBounds()
	m.ensureCursorVisible()
	if m.list.cursor != before {
		return m.panelLoadForCursor()
	}
	return m, nil
}

// cursorByRows moves the cursor by whole item rows, keeping its column where
// the target row is long enough.
func (m Model) cursorByRows(rows int) int {
	cursor := m.list.cursor
	for range max(rows, -rows) {
		next := m.adjacentRowItem(cursor, rows > 0)
		if next < 0 {
			break
		}
		cursor = next
	}
	return cursor
}

// adjacentRowItem returns the reading-order index of the item in the row
// below (or above) item i that is closest to its column, or -1 at either end
// of the list.
func (m Model) adjacentRowItem(i int, down bool) int {
	cur, ok := m.itemFrame(i)
	if !ok {
		return -1
	}
	best, rowY := -1, 0
	step := -1
	if down {
		step = 1
	}
	for j := i + step; j >= 0 && j < len(m.list.order); j += step {
		f, ok := m.itemFrame(j)
		if !ok || f.Y == cur.Y {
			continue
		}
		if best == -1 {
			rowY = f.Y
		}
		if f.Y != rowY {
			break
		}
		best = j
		if (down && f.X >= cur.X) || (!down && f.X <= cur.X) {
			break
		}
	}
	return best
}

func (m Model) itemFrame(i int) (layout.Rect, bool) {
	if i < 0 || i >= len(m.list.order) {
		return layout.Rect{}, false
	}
	ref := m.list.order[i]
	a, err := m.flow.ItemAttributes(layout.IndexPath{Section: ref.section, Item: ref.item})
	if err != nil {
		return layout.Rect{}, false
	}
	return a.Frame, true
}

// currentSection is the section of the cursor item, or the floating section
// when the list has no items.
func (m Model) currentSection() int {
	if ref, ok := m.list.current(); ok {
		return ref.section
	}
	if s, ok := m.engine.ActiveSection(); ok {
		return s
	}
	return 0
}

// jumpToSection scrolls so section's header sits at the top of the list and
// moves the cursor to its first item.
func (m Model) jumpToSection(section int) (tea.Model, tea.Cmd) {
	if section < 0 || section >= m.flow.NumberOfSections() {
		return m, nil
	}
	header, err := m.flow.SupplementaryAttributes(layout.KindHeader, section)
	if err != nil {
		m.ui.message = err.Error()
		return m, nil
	}
	m.list.offset = header.Frame.Y
	if i := m.list.firstInSection(section); i >= 0 {
		m.list.cursor = i
	}
	m.syncBounds()
	return m.panelLoadForCursor()
}

// handleFilterKeys routes keys while the filter input has focus. Every edit
// reapplies the filter, which rebuilds the layout.
func (m Model) handleFilterKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, filterKeys.Cancel):
		m.filterInput.Blur()
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.applyFilter()
			return m.panelLoadForCursor()
		}
		return m, nil
	case key.Matches(msg, filterKeys.Accept):
		m.filterInput.Blur()
		return m.panelLoadForCursor()
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.applyFilter()
	}
	return m, tea.Batch(cmd, textinput.Blink)
}
