package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daptify14/stickit/internal/layout"
)

// View implements tea.Model by rendering the current screen state.
func (m Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	if m.ui.mouseCapture {
		v.MouseMode = tea.MouseModeCellMotion
	} else {
		v.MouseMode = tea.MouseModeNone
	}
	v.KeyboardEnhancements.ReportEventTypes = true

	if m.view == PickerScreen {
		v.Content = m.renderPicker()
		return v
	}

	var b strings.Builder
	b.WriteString(renderBreadcrumb(appName, shortenPath(m.root, m.home)))
	b.WriteString("\n")
	b.WriteString(renderSeparator(m.effectiveWidth()))
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n")
	b.WriteString(m.renderListWithPanel())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(listKeys))
	v.Content = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, b.String())
	return v
}

func (m Model) renderFilterLine() string {
	switch {
	case m.filterInput.Focused():
		return m.filterInput.View()
	case m.ui.loading:
		return " " + m.ui.loadingSpinner.View() + activeTheme.DimText.Render(" Scanning…")
	case m.filterInput.Value() != "":
		return activeTheme.HintText.Render(" filter: ") + activeTheme.FilterText.Render(m.filterInput.Value())
	default:
		return activeTheme.DimText.Render(" / to filter")
	}
}

func (m Model) renderListWithPanel() string {
	list := m.renderList()
	if !m.panel.shouldShow(m.effectiveWidth()) {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.renderFilePanel(panelWidthFor(m.effectiveWidth())))
}

// --- List canvas ---

// listRow is one visible row of the list area while it is being painted.
// A header or footer covers the whole row; cells share it side by side.
type listRow struct {
	full  string
	cells []paintedCell
	isSet bool
}

type paintedCell struct {
	x, width int
	text     string
}

// renderList paints the elements in the visible bounds in ascending z order,
// so a floating header covers whatever scrolls beneath it.
func (m Model) renderList() string {
	width, height := m.listWidth(), m.listHeight()
	if len(m.list.order) == 0 {
		return m.renderEmptyList(width, height)
	}

	elems := m.engine.ElementsInRect(m.listBounds())
	slices.SortStableFunc(elems, func(a, b layout.Attributes) int { return a.ZIndex - b.ZIndex })

	rows := make([]listRow, height)
	for _, a := range elems {
		for line := range a.Frame.Height {
			r := a.Frame.Y + line - m.list.offset
			if r < 0 || r >= height {
				continue
			}
			switch a.Kind {
			case layout.KindHeader:
				rows[r] = listRow{full: m.headerLine(a, line), isSet: true}
			case layout.KindFooter:
				rows[r] = listRow{full: m.footerLine(a, line), isSet: true}
			case layout.KindCell:
				if rows[r].full != "" {
					rows[r] = listRow{}
				}
				rows[r].isSet = true
				rows[r].cells = append(rows[r].cells, paintedCell{
					x: a.Frame.X, width: a.Frame.Width, text: m.cellLine(a, line),
				})
			}
		}
	}

	lines := make([]string, height)
	for i, row := range rows {
		lines[i] = composeRow(row, width)
	}
	return strings.Join(lines, "\n")
}

func composeRow(row listRow, width int) string {
	if row.full != "" || !row.isSet {
		return fitCell(row.full, width)
	}
	slices.SortFunc(row.cells, func(a, b paintedCell) int { return a.x - b.x })
	var b strings.Builder
	col := 0
	for _, c := range row.cells {
		if c.x > col {
			b.WriteString(strings.Repeat(" ", c.x-col))
			col = c.x
		}
		b.WriteString(fitCell(c.text, c.width))
		col += c.width
	}
	return fitCell(b.String(), width)
}

// headerLine returns one rendered line of a section header, from the header
// cache when the engine has not reported it stale since the last render.
func (m Model) headerLine(a layout.Attributes, line int) string {
	lines, ok := m.headers.get(a.Path.Section)
	if !ok || len(lines) != a.Frame.Height {
		lines = m.renderHeader(a)
		m.headers.put(a.Path.Section, lines)
	}
	return lines[line]
}

func (m Model) renderHeader(a layout.Attributes) []string {
	style := activeTheme.Header
	if a.ZIndex > 0 {
		style = activeTheme.FloatingHeader
	}
	title := ""
	if a.Path.Section < len(m.list.visible.Sections) {
		sec := m.list.visible.Sections[a.Path.Section]
		title = sec.Title
		if icon := sectionIcon(m.iconMode); icon != "" {
			title = icon + " " + title
		}
		title = fmt.Sprintf(" %s (%d)", title, len(sec.Items))
	}
	out := make([]string, a.Frame.Height)
	for i := range out {
		text := ""
		if i == 0 {
			text = title
		}
		out[i] = style.Render(fitCell(text, a.Frame.Width))
	}
	return out
}

func (m Model) footerLine(a layout.Attributes, line int) string {
	if line > 0 {
		return ""
	}
	rule := strings.Repeat("╌", max(0, a.Frame.Width-2))
	return activeTheme.Footer.Render(" " + rule)
}

func (m Model) cellLine(a layout.Attributes, line int) string {
	it, ok := m.list.visible.Item(a.Path.Section, a.Path.Item)
	if !ok {
		return ""
	}
	cur, hasCursor := m.list.current()
	selected := hasCursor && cur.section == a.Path.Section && cur.item == a.Path.Item
	if line > 0 {
		if selected {
			return activeTheme.Cursor.Render(strings.Repeat(" ", a.Frame.Width))
		}
		return ""
	}
	if selected {
		plain := "▸ " + renderItemIcon(it.Name, true, m.iconMode) + it.Name
		return activeTheme.Cursor.Render(fitCell(plain, a.Frame.Width))
	}
	return "  " + renderItemIcon(it.Name, false, m.iconMode) + activeTheme.Normal.Render(it.Name)
}

func (m Model) renderEmptyList(width, height int) string {
	msg := "No items"
	switch {
	case m.ui.loading:
		msg = "Scanning " + shortenPath(m.root, m.home) + "…"
	case m.filterInput.Value() != "":
		msg = fmt.Sprintf("No matches for %q", m.filterInput.Value())
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	lines[0] = activeTheme.DimText.Render(fitCell(" "+msg, width))
	return strings.Join(lines, "\n")
}

// --- Status bar ---

func (m Model) renderStatusBar() string {
	width := m.effectiveWidth()
	text := m.ui.message
	if text == "" {
		text = m.statusSummary()
	}
	return activeTheme.StatusBar.Width(width).Render(visualTruncate(text, max(1, width-2)))
}

func (m Model) statusSummary() string {
	total := len(m.list.order)
	if total == 0 {
		return "0 items"
	}
	parts := []string{}
	if s, ok := m.engine.ActiveSection(); ok && s < len(m.list.visible.Sections) {
		parts = append(parts, fmt.Sprintf("%s %d/%d", m.list.visible.Sections[s].Title, s+1, len(m.list.visible.Sections)))
	}
	parts = append(parts, fmt.Sprintf("item %d/%d", m.list.cursor+1, total))
	if m.list.visible.Len() != m.list.full.Len() {
		parts = append(parts, fmt.Sprintf("filtered from %d", m.list.full.Len()))
	}
	if wm := m.walk.lastMetrics; wm.Elapsed > 0 {
		parts = append(parts, fmt.Sprintf("walked in %s", wm.Elapsed.Round(time.Millisecond)))
	}
	return strings.Join(parts, " · ")
}
