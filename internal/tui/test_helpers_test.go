package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/daptify14/stickit/internal/catalog"
	"github.com/daptify14/stickit/internal/layout"
)

// ── Fixtures ────────────────────────────────────────────────────────

// testCatalog returns sections alpha, beta and gamma with six items each.
func testCatalog() catalog.Catalog {
	c := catalog.Catalog{Root: "/srv/demo"}
	for _, title := range []string{"alpha", "beta", "gamma"} {
		sec := catalog.Section{Title: title}
		for i := 1; i <= 6; i++ {
			name := fmt.Sprintf("%s-%d.txt", title, i)
			sec.Items = append(sec.Items, catalog.Item{Name: name, Path: title + "/" + name})
		}
		c.Sections = append(c.Sections, sec)
	}
	return c
}

// oneColumnMetrics keeps every item on its own row at test widths, so with
// testCatalog headers sit at y=0, 8, 16 and footers at y=7, 15, 23.
func oneColumnMetrics() layout.Metrics {
	return layout.Metrics{HeaderHeight: 1, FooterHeight: 1, ItemHeight: 1, ColumnWidth: 200}
}

// ── Model Builder ───────────────────────────────────────────────────

// testModelConfig holds configuration for building a test Model.
// Options populate this struct; newTestModel reads it once to construct
// the Model.
type testModelConfig struct {
	catalog   catalog.Catalog
	metrics   layout.Metrics
	width     int
	height    int
	iconMode  IconMode
	panelMode string
	postInit  []func(*Model)
}

// TestModelOption configures a test Model via testModelConfig.
type TestModelOption func(*testModelConfig)

func WithSize(w, h int) TestModelOption {
	return func(c *testModelConfig) { c.width = w; c.height = h }
}

func WithCatalog(cat catalog.Catalog) TestModelOption {
	return func(c *testModelConfig) { c.catalog = cat }
}

func WithMetrics(m layout.Metrics) TestModelOption {
	return func(c *testModelConfig) { c.metrics = m }
}

func WithIconMode(mode IconMode) TestModelOption {
	return func(c *testModelConfig) { c.iconMode = mode }
}

func WithPanelVisible() TestModelOption {
	return func(c *testModelConfig) { c.panelMode = "show" }
}

func WithOffset(offset int) TestModelOption {
	return func(c *testModelConfig) {
		c.postInit = append(c.postInit, func(m *Model) {
			m.list.offset = offset
			m.syncBounds()
		})
	}
}

// newTestModel creates an 80x20 Model over testCatalog with one-column
// metrics, no icons, the dark theme and the preview panel hidden. The size is
// delivered as a WindowSizeMsg so the layout is synchronised the way it is at
// runtime.
func newTestModel(opts ...TestModelOption) Model {
	cfg := &testModelConfig{
		catalog:   testCatalog(),
		metrics:   oneColumnMetrics(),
		width:     80,
		height:    20,
		iconMode:  IconModeNone,
		panelMode: "hide",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cat := cfg.catalog
	m := NewModel(Options{
		Catalog:   &cat,
		Metrics:   cfg.metrics,
		IconMode:  cfg.iconMode,
		PanelMode: cfg.panelMode,
		ThemeMode: "dark",
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: cfg.width, Height: cfg.height})
	m = updated.(Model)

	for _, fn := range cfg.postInit {
		fn(&m)
	}
	return m
}

// ── Key Factories ───────────────────────────────────────────────────

// runeKey creates a tea.KeyPressMsg for a rune string (e.g., "j", "?", "G").
func runeKey(r string) tea.KeyPressMsg {
	runes := []rune(r)
	return tea.KeyPressMsg{Code: runes[0], Text: r}
}

// specialKey creates a tea.KeyPressMsg for a special key code (e.g., tea.KeyEsc).
func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// ctrlKey creates a tea.KeyPressMsg for a ctrl+key combo (e.g., ctrlKey('d') for ctrl+d).
func ctrlKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: tea.ModCtrl}
}

// ── Dispatch Helpers ────────────────────────────────────────────────

// sendKey dispatches a tea.KeyPressMsg through Model.Update and asserts the
// returned value is a Model.
func sendKey(t *testing.T, m Model, key tea.KeyPressMsg) (Model, tea.Cmd) {
	t.Helper()
	return sendMsg(t, m, key)
}

// sendMsg dispatches any tea.Msg through Model.Update and asserts the
// returned value is a Model.
func sendMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	updated, ok := result.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want tui.Model", result)
	}
	return updated, cmd
}

// ── Assertion Helpers ───────────────────────────────────────────────

// isQuitCmd checks whether a tea.Cmd produces a tea.QuitMsg.
func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// assertRenderedLinesFitWidth checks that no ANSI-aware line exceeds width.
func assertRenderedLinesFitWidth(t *testing.T, output string, width int) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	for i, line := range lines {
		if got := ansi.StringWidth(line); got > width {
			t.Fatalf("line %d width=%d exceeds maxWidth=%d: %q", i+1, got, width, line)
		}
	}
}

// assertActive checks the section whose header the engine floats.
func assertActive(t *testing.T, m Model, want int) {
	t.Helper()
	got, ok := m.engine.ActiveSection()
	if !ok || got != want {
		t.Fatalf("active section = %d (valid=%t), want %d", got, ok, want)
	}
}

// ── Golden Test Helpers ─────────────────────────────────────────────

// stripForGolden removes ANSI escape codes and trailing whitespace from
// rendered output. Lipgloss often pads lines to full width with spaces;
// stripping trailing whitespace prevents golden file mismatches from
// invisible padding changes.
func stripForGolden(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
