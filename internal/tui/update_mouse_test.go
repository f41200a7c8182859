package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMouseClickSelectsCell(t *testing.T) {
	m := newTestModel()
	msg := tea.MouseClickMsg{
		Button: tea.MouseLeft,
		X:      4,
		Y:      listHeaderLines + 3, // content y=3: alpha-3.txt
	}
	m, _ = sendMsg(t, m, msg)

	if ref, _ := m.list.current(); ref != (itemRef{section: 0, item: 2}) {
		t.Fatalf("cursor at %+v after click, want alpha item 2", ref)
	}
}

func TestMouseClickFloatingHeaderWinsOverCell(t *testing.T) {
	m := newTestModel(WithOffset(9))
	assertActive(t, m, 1)

	// Row 0 shows the pinned beta header on top of beta-1.txt.
	hit, ok := m.elementAt(4, 9)
	if !ok || hit.ZIndex == 0 || hit.Path.Section != 1 {
		t.Fatalf("hit %s (found=%t), want floating header of section 1", hit, ok)
	}

	m, _ = sendMsg(t, m, tea.MouseClickMsg{Button: tea.MouseLeft, X: 4, Y: listHeaderLines})
	if m.list.offset != 8 {
		t.Fatalf("offset = %d, want 8 after jumping to the section", m.list.offset)
	}
	if ref, _ := m.list.current(); ref != (itemRef{section: 1, item: 0}) {
		t.Fatalf("cursor at %+v, want beta item 0", ref)
	}
}

func TestMouseClickOutsideListIgnored(t *testing.T) {
	m := newTestModel()
	for _, y := range []int{0, listHeaderLines - 1, listHeaderLines + m.listHeight()} {
		next, _ := sendMsg(t, m, tea.MouseClickMsg{Button: tea.MouseLeft, X: 2, Y: y})
		if next.list.cursor != 0 || next.list.offset != 0 {
			t.Fatalf("click at y=%d moved the list: cursor=%d offset=%d", y, next.list.cursor, next.list.offset)
		}
	}
}

func TestMouseWheelScrollsAndPullsCursor(t *testing.T) {
	m := newTestModel()

	m, _ = sendMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown, X: 2, Y: 6})
	if m.list.offset != wheelStep {
		t.Fatalf("offset = %d, want %d", m.list.offset, wheelStep)
	}
	// alpha-1.txt scrolled under the floating header; the cursor moves to
	// the first fully visible item.
	if ref, _ := m.list.current(); ref != (itemRef{section: 0, item: 3}) {
		t.Fatalf("cursor at %+v, want alpha item 3", ref)
	}

	for range 5 {
		m, _ = sendMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown, X: 2, Y: 6})
	}
	if m.list.offset != m.maxOffset() {
		t.Fatalf("offset = %d, want clamp at %d", m.list.offset, m.maxOffset())
	}
	assertActive(t, m, 1)

	m, _ = sendMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp, X: 2, Y: 6})
	if m.list.offset != m.maxOffset()-wheelStep {
		t.Fatalf("offset after wheel up = %d", m.list.offset)
	}
	assertActive(t, m, 0)
}

func TestMouseIgnoredWhileFiltering(t *testing.T) {
	m := newTestModel()
	m, _ = sendKey(t, m, runeKey("/"))
	m, _ = sendMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown, X: 2, Y: 6})
	if m.list.offset != 0 {
		t.Fatalf("wheel scrolled while filtering: offset=%d", m.list.offset)
	}
}
