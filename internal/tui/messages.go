package tui

import "github.com/daptify14/stickit/internal/catalog"

// --- Messages ---

// catalogLoadedMsg delivers the result of a directory walk.
type catalogLoadedMsg struct {
	catalog catalog.Catalog
	metrics catalog.WalkMetrics
	err     error
	gen     uint64
}

// panelContentLoadedMsg is sent when async panel content loading completes.
type panelContentLoadedMsg struct {
	path    string
	content string
	err     error
}

// editorDoneMsg is sent when the external editor exits.
type editorDoneMsg struct {
	path string
	err  error
}

// openDoneMsg is sent after handing a path to the system opener.
type openDoneMsg struct {
	path string
	err  error
}
