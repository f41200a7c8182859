package tui

import (
	"errors"
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/stickit/internal/catalog"
	"github.com/daptify14/stickit/internal/layout"
)

func TestNewModelPreloadedCatalog(t *testing.T) {
	m := newTestModel()

	if m.ui.loading {
		t.Fatal("preloaded catalog should not start a walk")
	}
	if got := len(m.list.order); got != 18 {
		t.Fatalf("order has %d items, want 18", got)
	}
	if m.root != "/srv/demo" {
		t.Fatalf("root = %q, want catalog root", m.root)
	}
	if got := m.flow.ContentHeight(); got != 24 {
		t.Fatalf("content height = %d, want 24", got)
	}
	if got := m.listHeight(); got != 15 {
		t.Fatalf("list height = %d, want 15", got)
	}
	assertActive(t, m, 0)
}

func TestNewModelWithoutCatalogStartsLoading(t *testing.T) {
	m := NewModel(Options{Root: t.TempDir(), IconMode: IconModeNone, ThemeMode: "dark"})
	if !m.ui.loading {
		t.Fatal("expected loading state before the walk completes")
	}
	if m.engine.SectionCount() != 0 {
		t.Fatalf("engine has %d sections before any catalog", m.engine.SectionCount())
	}
	if m.Init() == nil {
		t.Fatal("Init should return the walk batch")
	}
}

// ── Scroll and invalidation ─────────────────────────────────────────

func TestScrollEvictsOnlyEngineInvalidatedHeaders(t *testing.T) {
	m := newTestModel()
	for s := range 3 {
		m.headers.put(s, []string{"cached"})
	}

	m.list.offset = 9
	m.syncBounds()

	assertActive(t, m, 1)
	if want := []int{1, 0}; !slices.Equal(m.headers.lastEvicted, want) {
		t.Fatalf("evicted %v, want %v", m.headers.lastEvicted, want)
	}
	if _, ok := m.headers.get(2); !ok {
		t.Fatal("header 2 was not invalidated and should stay cached")
	}
	for _, s := range []int{0, 1} {
		if _, ok := m.headers.get(s); ok {
			t.Fatalf("header %d should have been evicted", s)
		}
	}
}

func TestScrollWithinSectionEvictsActiveHeaderOnly(t *testing.T) {
	m := newTestModel(WithSize(80, 12)) // list height 7
	m.list.offset = 10
	m.syncBounds()
	assertActive(t, m, 1)

	m.headers.put(0, []string{"cached"})
	m.list.offset = 12
	m.syncBounds()

	if want := []int{1}; !slices.Equal(m.headers.lastEvicted, want) {
		t.Fatalf("evicted %v, want %v", m.headers.lastEvicted, want)
	}
	if _, ok := m.headers.get(0); !ok {
		t.Fatal("header 0 should stay cached while section 1 is active")
	}
}

func TestFloatingHeaderPositions(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		active    int
		headerY   int
		headerTop bool
	}{
		{name: "top", offset: 0, active: 0, headerY: 0, headerTop: true},
		{name: "on boundary keeps previous section", offset: 8, active: 0, headerY: 6},
		{name: "pinned inside section", offset: 10, active: 1, headerY: 10, headerTop: true},
		{name: "clamped above footer", offset: 15, active: 1, headerY: 14},
		{name: "next section", offset: 17, active: 2, headerY: 17, headerTop: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(WithSize(80, 12), WithOffset(tt.offset))
			assertActive(t, m, tt.active)
			h := m.engine.SupplementaryAttributes(layout.KindHeader, tt.active)
			if h.Frame.Y != tt.headerY {
				t.Fatalf("header y = %d, want %d", h.Frame.Y, tt.headerY)
			}
			if h.ZIndex == 0 {
				t.Fatal("active header should be raised above the list")
			}
			if got := h.Frame.Y == m.list.offset; got != tt.headerTop {
				t.Fatalf("header at list top = %t, want %t", got, tt.headerTop)
			}
		})
	}
}

func TestScrollBackRestoresDefaultHeader(t *testing.T) {
	m := newTestModel(WithSize(80, 12), WithOffset(12))
	assertActive(t, m, 1)

	m.list.offset = 0
	m.syncBounds()

	assertActive(t, m, 0)
	rec := m.engine.Record(1)
	if rec.Header.Frame.Y != 8 || rec.Header.ZIndex != 0 {
		t.Fatalf("section 1 header = %s, want default at y=8 z=0", rec.Header)
	}
}

func TestResizeRebuildsLayout(t *testing.T) {
	m := newTestModel(WithMetrics(layout.DefaultMetrics()))
	if got := m.flow.Columns(); got != 2 {
		t.Fatalf("columns at width 80 = %d, want 2", got)
	}
	m.headers.put(0, []string{"cached"})

	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})

	if got := m.flow.Width(); got != 120 {
		t.Fatalf("flow width = %d, want 120", got)
	}
	if got := m.flow.Columns(); got != 4 {
		t.Fatalf("columns at width 120 = %d, want 4", got)
	}
	if _, ok := m.headers.get(0); ok {
		t.Fatal("relayout should drop every cached header")
	}
	if vp := m.engine.Viewport(); vp.Bounds.Width != 120 {
		t.Fatalf("engine bounds width = %d, want 120", vp.Bounds.Width)
	}
	assertActive(t, m, 0)
}

func TestHeightChangeIsIncremental(t *testing.T) {
	m := newTestModel()
	m.headers.put(2, []string{"cached"})

	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	if _, ok := m.headers.get(2); !ok {
		t.Fatal("a height-only change must not drop unrelated headers")
	}
	if want := []int{0}; !slices.Equal(m.headers.lastEvicted, want) {
		t.Fatalf("evicted %v, want %v", m.headers.lastEvicted, want)
	}
}

func TestOffsetClampedToContent(t *testing.T) {
	m := newTestModel(WithOffset(500))
	if m.list.offset != 9 {
		t.Fatalf("offset = %d, want max offset 9", m.list.offset)
	}
	m.list.offset = -5
	m.syncBounds()
	if m.list.offset != 0 {
		t.Fatalf("offset = %d, want 0", m.list.offset)
	}
}

// ── Navigation ──────────────────────────────────────────────────────

func TestCursorDownScrollsBelowFloatingHeader(t *testing.T) {
	m := newTestModel(WithSize(80, 12)) // list height 7
	for range 7 {
		m, _ = sendKey(t, m, runeKey("j"))
	}
	ref, _ := m.list.current()
	if ref != (itemRef{section: 1, item: 1}) {
		t.Fatalf("cursor at %+v, want section 1 item 1", ref)
	}
	// Item 1.1 sits at y=10; it must stay visible below the pinned header.
	a, _ := m.flow.ItemAttributes(layout.IndexPath{Section: 1, Item: 1})
	if a.Frame.Y < m.list.offset+m.floatingHeaderHeight() || a.Frame.MaxY() > m.list.offset+m.listHeight() {
		t.Fatalf("cursor row y=%d outside visible rows [%d,%d)", a.Frame.Y, m.list.offset+1, m.list.offset+m.listHeight())
	}
}

func TestCursorUpRevealsRowUnderFloatingHeader(t *testing.T) {
	m := newTestModel(WithSize(80, 12), WithOffset(12))
	m.list.cursor = m.list.indexOf(itemRef{section: 1, item: 4}) // y=13
	m, _ = sendKey(t, m, runeKey("k"))
	m, _ = sendKey(t, m, runeKey("k"))

	// Item 1.2 sits at y=11; the header pinned at the offset covers one row.
	if m.list.offset != 10 {
		t.Fatalf("offset = %d, want 10", m.list.offset)
	}
}

func TestGridNavigationKeepsColumn(t *testing.T) {
	m := newTestModel(WithMetrics(layout.Metrics{HeaderHeight: 1, FooterHeight: 1, ItemHeight: 1, ColumnWidth: 20, ColumnGap: 0}))
	if got := m.flow.Columns(); got != 4 {
		t.Fatalf("columns = %d, want 4", got)
	}
	m.list.cursor = 1 // alpha-2, column 1

	m, _ = sendKey(t, m, runeKey("j"))
	if ref, _ := m.list.current(); ref != (itemRef{section: 0, item: 5}) {
		t.Fatalf("after j cursor at %+v, want alpha item 5", ref)
	}

	m, _ = sendKey(t, m, runeKey("j"))
	if ref, _ := m.list.current(); ref != (itemRef{section: 1, item: 1}) {
		t.Fatalf("after second j cursor at %+v, want beta item 1", ref)
	}

	m, _ = sendKey(t, m, runeKey("k"))
	m, _ = sendKey(t, m, runeKey("k"))
	if ref, _ := m.list.current(); ref != (itemRef{section: 0, item: 1}) {
		t.Fatalf("after k k cursor at %+v, want alpha item 1", ref)
	}
}

func TestShortRowNavigationFallsBackToLastItem(t *testing.T) {
	m := newTestModel(WithMetrics(layout.Metrics{HeaderHeight: 1, FooterHeight: 1, ItemHeight: 1, ColumnWidth: 20}))
	m.list.cursor = 3 // alpha-4, column 3 of the first row
	m, _ = sendKey(t, m, runeKey("j"))
	if ref, _ := m.list.current(); ref != (itemRef{section: 0, item: 5}) {
		t.Fatalf("cursor at %+v, want the last item of the short row", ref)
	}
}

func TestSectionJumpKeys(t *testing.T) {
	m := newTestModel(WithSize(80, 12))

	m, _ = sendKey(t, m, runeKey("]"))
	if m.list.offset != 8 {
		t.Fatalf("offset after ] = %d, want 8", m.list.offset)
	}
	if ref, _ := m.list.current(); ref != (itemRef{section: 1, item: 0}) {
		t.Fatalf("cursor after ] at %+v", ref)
	}

	m, _ = sendKey(t, m, runeKey("]"))
	m, _ = sendKey(t, m, runeKey("]")) // past the last section: no-op
	if ref, _ := m.list.current(); ref.section != 2 {
		t.Fatalf("cursor section = %d, want 2", ref.section)
	}

	m, _ = sendKey(t, m, runeKey("["))
	if ref, _ := m.list.current(); ref.section != 1 {
		t.Fatalf("cursor section after [ = %d, want 1", ref.section)
	}
}

func TestHomeEndKeys(t *testing.T) {
	m := newTestModel()
	m, _ = sendKey(t, m, runeKey("G"))
	if m.list.cursor != 17 || m.list.offset != 9 {
		t.Fatalf("after G cursor=%d offset=%d, want 17/9", m.list.cursor, m.list.offset)
	}
	assertActive(t, m, 1)

	m, _ = sendKey(t, m, runeKey("g"))
	if m.list.cursor != 0 || m.list.offset != 0 {
		t.Fatalf("after g cursor=%d offset=%d, want 0/0", m.list.cursor, m.list.offset)
	}
	assertActive(t, m, 0)
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := sendKey(t, m, runeKey("q"))
	if !isQuitCmd(cmd) {
		t.Fatal("q should quit")
	}
}

func TestHelpToggleShrinksList(t *testing.T) {
	m := newTestModel()
	before := m.listHeight()
	m, _ = sendKey(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Fatal("expected full help")
	}
	if m.listHeight() >= before {
		t.Fatalf("list height %d should shrink below %d with full help", m.listHeight(), before)
	}
}

// ── Filter ──────────────────────────────────────────────────────────

func TestFilterRebuildsLayout(t *testing.T) {
	m := newTestModel(WithOffset(9))
	m, _ = sendKey(t, m, runeKey("/"))
	if !m.filterInput.Focused() {
		t.Fatal("expected filter input focus")
	}
	for _, r := range "beta-1" {
		m, _ = sendKey(t, m, runeKey(string(r)))
	}

	if m.list.visible.Len() == 0 || m.list.visible.Len() == m.list.full.Len() {
		t.Fatalf("filter kept %d of %d items", m.list.visible.Len(), m.list.full.Len())
	}
	if m.list.offset != 0 || m.list.cursor != 0 {
		t.Fatalf("filter should reset to the top, got offset=%d cursor=%d", m.list.offset, m.list.cursor)
	}
	if got, want := m.engine.SectionCount(), len(m.list.visible.Sections); got != want {
		t.Fatalf("engine sections = %d, want %d", got, want)
	}
	if it, _ := m.currentItem(); it.Name != "beta-1.txt" {
		t.Fatalf("first match = %q, want beta-1.txt", it.Name)
	}

	m, _ = sendKey(t, m, specialKey(tea.KeyEscape))
	if m.filterInput.Focused() || m.list.visible.Len() != 18 {
		t.Fatalf("esc should clear the filter, have %d items", m.list.visible.Len())
	}
}

func TestFilterWithNoMatchesEmptiesEngine(t *testing.T) {
	m := newTestModel()
	m, _ = sendKey(t, m, runeKey("/"))
	for _, r := range "zzzz" {
		m, _ = sendKey(t, m, runeKey(string(r)))
	}
	if m.engine.SectionCount() != 0 {
		t.Fatalf("engine sections = %d, want 0", m.engine.SectionCount())
	}
	if _, ok := m.engine.ActiveSection(); ok {
		t.Fatal("no section can float in an empty list")
	}
	if m.currentPath() != "" {
		t.Fatalf("current path = %q, want empty", m.currentPath())
	}
}

// ── Async messages ──────────────────────────────────────────────────

func TestStaleCatalogLoadIgnored(t *testing.T) {
	m := newTestModel()
	m.nextGen()
	stale := catalog.Catalog{Sections: []catalog.Section{{Title: "old", Items: []catalog.Item{{Name: "x"}}}}}

	m, _ = sendMsg(t, m, catalogLoadedMsg{catalog: stale, gen: m.gen - 1})
	if m.list.full.Len() != 18 {
		t.Fatal("stale walk result must be dropped")
	}
}

func TestCatalogLoadedReplacesList(t *testing.T) {
	m := NewModel(Options{Root: "/srv/demo", Metrics: oneColumnMetrics(), PanelMode: "hide", IconMode: IconModeNone, ThemeMode: "dark"})
	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, _ = sendMsg(t, m, catalogLoadedMsg{
		catalog: testCatalog(),
		metrics: catalog.WalkMetrics{Items: 18, Sections: 3, Terminated: "max-items"},
		gen:     m.gen,
	})
	if m.ui.loading {
		t.Fatal("loading should end")
	}
	if m.engine.SectionCount() != 3 {
		t.Fatalf("engine sections = %d, want 3", m.engine.SectionCount())
	}
	if m.ui.message != "Showing the first 18 items" {
		t.Fatalf("message = %q", m.ui.message)
	}
	assertActive(t, m, 0)
}

func TestCatalogLoadErrorReported(t *testing.T) {
	m := NewModel(Options{Root: "/srv/demo", PanelMode: "hide", ThemeMode: "dark"})
	m, _ = sendMsg(t, m, catalogLoadedMsg{err: errors.New("boom"), gen: m.gen})
	if m.ui.message != "Walk failed: boom" {
		t.Fatalf("message = %q", m.ui.message)
	}
}

func TestReloadBumpsGeneration(t *testing.T) {
	m := NewModel(Options{Root: t.TempDir(), PanelMode: "hide", ThemeMode: "dark"})
	gen := m.gen
	m, cmd := sendKey(t, m, runeKey("r"))
	if m.gen != gen+1 || !m.ui.loading || cmd == nil {
		t.Fatalf("reload gen=%d loading=%t cmd=%v", m.gen, m.ui.loading, cmd != nil)
	}
	if m.walk.cancel == nil {
		t.Fatal("reload should track the walk cancel func")
	}
	m.walk.cancel()
}

func TestReloadSkippedForManifestCatalog(t *testing.T) {
	m := newTestModel()
	m, cmd := sendKey(t, m, runeKey("r"))
	if cmd != nil || m.ui.message == "" {
		t.Fatalf("manifest reload should only set a message, got cmd=%v msg=%q", cmd != nil, m.ui.message)
	}
}
