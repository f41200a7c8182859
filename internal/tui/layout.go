package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/daptify14/stickit/internal/layout"
)

// --- Layout Calculations ---

// Layout constants shared between rendering and mouse-hit-testing.
const (
	// listHeaderLines is the number of rows above the list: breadcrumb +
	// separator + filter line.
	listHeaderLines = 3

	// listFooterLines is the minimum number of rows below the list:
	// status bar + short help line.
	listFooterLines = 2
)

// clampListHeight ensures a computed list height is at least 1.
// Use only after the m.height == 0 (uninitialized) guard.
func clampListHeight(height int) int {
	if height < 1 {
		return 1
	}
	return height
}

func (m Model) effectiveWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

func (m Model) effectiveHeight() int {
	if m.height == 0 {
		return 24
	}
	return m.height
}

// footerLines is the status bar plus however many rows the help view takes.
func (m Model) footerLines() int {
	return max(listFooterLines, 1+lipgloss.Height(m.help.View(listKeys)))
}

func (m Model) listHeight() int {
	return clampListHeight(m.effectiveHeight() - listHeaderLines - m.footerLines())
}

// listWidth is the width of the list area, which shrinks when the preview
// panel is shown.
func (m Model) listWidth() int {
	w := m.effectiveWidth()
	if m.panel.shouldShow(w) {
		return max(1, w-panelWidthFor(w)-1)
	}
	return w
}

// listBounds is the visible window onto the list content.
func (m Model) listBounds() layout.Rect {
	return layout.NewRect(0, m.list.offset, m.listWidth(), m.listHeight())
}

// maxOffset is the largest content offset that still fills the list area.
func (m Model) maxOffset() int {
	return max(0, m.flow.ContentHeight()-m.listHeight())
}

func (m *Model) clampOffset() {
	m.list.offset = max(0, min(m.list.offset, m.maxOffset()))
}

// syncBounds reports the current list bounds to the floating engine and
// applies its answer. A width change rebuilds the flow layout and the engine
// before the bounds are reported again; otherwise every stale header is
// refetched so its floating position is current, and dropped from the render
// cache.
func (m *Model) syncBounds() {
	m.clampOffset()
	inv := m.engine.BoundsChanged(m.listBounds())
	if inv.FullRelayout {
		m.relayout()
		inv = m.engine.BoundsChanged(m.listBounds())
	}
	for _, s := range inv.Headers {
		m.engine.SupplementaryAttributes(layout.KindHeader, s)
	}
	m.headers.evict(inv.Headers)
}

// relayout prepares the flow layout at the current list width and reseeds the
// floating engine from it.
func (m *Model) relayout() {
	m.flow.Prepare(m.listWidth())
	if err := m.engine.Prepare(); err != nil {
		m.ui.message = "Layout failed: " + err.Error()
	}
	m.headers.clear()
	m.clampOffset()
}

// floatingHeaderHeight is the number of rows the floating header covers at
// the top of the list area.
func (m Model) floatingHeaderHeight() int {
	if m.engine.SectionCount() == 0 {
		return 0
	}
	return m.flow.Metrics().HeaderHeight
}

// ensureCursorVisible scrolls so the cursor item sits inside the list area
// and below the floating header.
func (m *Model) ensureCursorVisible() {
	ref, ok := m.list.current()
	if !ok {
		return
	}
	a, err := m.flow.ItemAttributes(layout.IndexPath{Section: ref.section, Item: ref.item})
	if err != nil {
		return
	}
	top := m.list.offset + m.floatingHeaderHeight()
	bottom := m.list.offset + m.listHeight()
	switch {
	case a.Frame.Y < top:
		m.list.offset = a.Frame.Y - m.floatingHeaderHeight()
	case a.Frame.MaxY() > bottom:
		m.list.offset = a.Frame.MaxY() - m.listHeight()
	}
	m.syncBounds()
}

// cursorIntoView moves the cursor to the nearest item inside the list area
// after a scroll that did not move it.
func (m *Model) cursorIntoView() {
	ref, ok := m.list.current()
	if !ok {
		return
	}
	a, err := m.flow.ItemAttributes(layout.IndexPath{Section: ref.section, Item: ref.item})
	if err != nil {
		return
	}
	top := m.list.offset + m.floatingHeaderHeight()
	bottom := m.list.offset + m.listHeight()
	if a.Frame.Y >= top && a.Frame.MaxY() <= bottom {
		return
	}
	for i, r := range m.list.order {
		b, err := m.flow.ItemAttributes(layout.IndexPath{Section: r.section, Item: r.item})
		if err != nil {
			continue
		}
		if b.Frame.Y >= top && b.Frame.MaxY() <= bottom {
			m.list.cursor = i
			if a.Frame.Y < top {
				return
			}
		} else if b.Frame.Y >= bottom {
			return
		}
	}
}
