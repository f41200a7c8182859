package tui

import (
	"log/slog"

	"github.com/daptify14/stickit/internal/catalog"
	"github.com/daptify14/stickit/internal/layout"
)

// Options configures the TUI model.
type Options struct {
	// Root is the directory walked for sections. Ignored when Catalog is set.
	Root string

	// Catalog, when non-nil, is shown as-is instead of walking Root
	// (e.g. a catalog loaded from a YAML manifest).
	Catalog *catalog.Catalog

	// Walk bounds the directory walk.
	Walk catalog.WalkOptions

	// Metrics are the flow layout sizes. Zero value means layout.DefaultMetrics().
	Metrics layout.Metrics

	// Editor overrides the $EDITOR environment variable for file editing.
	// Supports binary with arguments (e.g., "code --wait").
	// Resolution order: Editor > $EDITOR > "vi".
	Editor string

	// PanelMode controls default panel visibility: "auto" (default), "show", "hide".
	// "auto" shows when terminal >= 90 columns, "show" always shows, "hide" never shows.
	PanelMode string

	// ThemeMode forces the "dark" or "light" palette. Empty or "auto" follows
	// the terminal background.
	ThemeMode string

	// IconMode controls which icon set to display next to item names.
	// Valid values: IconModeNerdFont (default), IconModeUnicode, IconModeNone.
	IconMode IconMode

	// DebugLog, when non-nil, receives structured JSON logs of every tea.Msg
	// processed by Update() and of the floating layout engine. Set via the
	// STICKIT_DEBUG environment variable.
	DebugLog *slog.Logger
}
