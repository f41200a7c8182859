package tui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/stickit/internal/layout"
)

// wheelStep is the number of rows one wheel notch scrolls.
const wheelStep = 3

// --- Mouse click handler ---

func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.filterInput.Focused() || msg.Button != tea.MouseLeft {
		return m, nil
	}
	row := msg.Y - listHeaderLines
	if row < 0 || row >= m.listHeight() || msg.X >= m.listWidth() {
		return m, nil
	}

	hit, ok := m.elementAt(msg.X, m.list.offset+row)
	if !ok {
		return m, nil
	}
	switch hit.Kind {
	case layout.KindHeader:
		return m.jumpToSection(hit.Path.Section)
	case layout.KindCell:
		idx := m.list.indexOf(itemRef{section: hit.Path.Section, item: hit.Path.Item})
		if idx < 0 {
			return m, nil
		}
		m.list.cursor = idx
		m.ensureCursorVisible()
		return m.panelLoadForCursor()
	}
	return m, nil
}

// elementAt returns the topmost element drawn at content cell (x, y). A
// floating header wins over the cells it covers.
func (m Model) elementAt(x, y int) (layout.Attributes, bool) {
	var hit layout.Attributes
	found := false
	for _, a := range m.engine.ElementsInRect(layout.NewRect(x, y, 1, 1)) {
		if !a.Frame.Contains(x, y) {
			continue
		}
		if !found || a.ZIndex >= hit.ZIndex {
			hit, found = a, true
		}
	}
	return hit, found
}

// --- Mouse wheel handler ---

func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.filterInput.Focused() {
		return m, nil
	}

	if m.panel.shouldShow(m.effectiveWidth()) && msg.X >= m.listWidth() {
		if !m.panel.viewportReady {
			m = m.syncPanelViewportContent()
		}
		scrollViewportByMouse(&m.panel.viewport, msg.Button, wheelStep)
		return m, nil
	}

	switch msg.Button {
	case tea.MouseWheelUp:
		m.list.offset -= wheelStep
	case tea.MouseWheelDown:
		m.list.offset += wheelStep
	default:
		return m, nil
	}
	before := m.list.cursor
	m.syncBounds()
	m.cursorIntoView()
	if m.list.cursor != before {
		return m.panelLoadForCursor()
	}
	return m, nil
}

func scrollViewportByMouse(vp *viewport.Model, btn tea.MouseButton, amount int) bool {
	switch btn {
	case tea.MouseWheelUp:
		vp.ScrollUp(amount)
		return true
	case tea.MouseWheelDown:
		vp.ScrollDown(amount)
		return true
	}
	return false
}
