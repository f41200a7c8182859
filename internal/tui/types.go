package tui

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/huh/v2"

	"github.com/daptify14/stickit/internal/catalog"
)

// Screen represents the current top-level screen of the TUI.
type Screen int

// Screen values for top-level TUI screens.
const (
	ListScreen Screen = iota
	PickerScreen
)

// itemRef addresses one item of the visible catalog.
type itemRef struct {
	section int
	item    int
}

// listState holds the visible catalog and the scroll position over it.
type listState struct {
	full    catalog.Catalog // as loaded
	visible catalog.Catalog // after filtering
	order   []itemRef       // visible items in reading order
	cursor  int             // index into order
	offset  int             // content y at the top of the list area
}

// current returns the item under the cursor.
func (l listState) current() (itemRef, bool) {
	if l.cursor < 0 || l.cursor >= len(l.order) {
		return itemRef{}, false
	}
	return l.order[l.cursor], true
}

// indexOf returns the position of ref in reading order, or -1.
func (l listState) indexOf(ref itemRef) int {
	for i, r := range l.order {
		if r == ref {
			return i
		}
	}
	return -1
}

// firstInSection returns the reading-order index of section's first item, or -1.
func (l listState) firstInSection(section int) int {
	for i, r := range l.order {
		if r.section == section {
			return i
		}
	}
	return -1
}

// uiState groups transient UI fields (loading, messages).
type uiState struct {
	message        string
	loading        bool
	loadingSpinner spinner.Model
	mouseCapture   bool
	themeLocked    bool // theme forced by options; background detection ignored
}

// walkState tracks the in-flight directory walk.
type walkState struct {
	cancel      context.CancelFunc
	lastMetrics catalog.WalkMetrics
}

// pickerState groups fields for the jump-to-section form.
type pickerState struct {
	form   *huh.Form
	choice *string // bound to the select; holds the section index
}
