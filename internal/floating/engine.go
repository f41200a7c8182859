// Package floating keeps the header of the section under the top of the
// viewport pinned in place while that section scrolls by. An Engine sits on
// top of a GeometrySource that knows each element's default position and
// tells its host exactly which headers go stale on every bounds change.
package floating

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/daptify14/stickit/internal/layout"
)

// FloatingZIndex is the default draw order of a floating header. It sits
// above any element the flow layout produces.
const FloatingZIndex = 1024

// ErrUnsortedHeaders is returned by Prepare when the geometry source places a
// section header above the header of the section before it.
var ErrUnsortedHeaders = errors.New("section headers are not in ascending order")

// GeometrySource supplies the default, non-floating layout of a sectioned list.
type GeometrySource interface {
	NumberOfSections() int
	SupplementaryAttributes(kind layout.ElementKind, section int) (layout.Attributes, error)
	ElementsInRect(rect layout.Rect) []layout.Attributes
}

// Viewport is the visible window onto the content. Bounds.Y is the content
// offset; Inset.Top is added to it before locating the active section.
type Viewport struct {
	Bounds layout.Rect
	Inset  layout.Insets
}

// Invalidation is the answer to a bounds change. Either the whole layout must
// be rebuilt (FullRelayout) or only the listed section headers are stale.
type Invalidation struct {
	FullRelayout bool
	Headers      []int
}

// activeSection is the section whose header is floating, if any.
type activeSection struct {
	index int
	valid bool
}

type observedWidth struct {
	value int
	valid bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a debug logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithFloatingZIndex overrides the draw order given to the floating header.
func WithFloatingZIndex(z int) Option {
	return func(e *Engine) { e.floatingZ = z }
}

// Engine computes floating header positions for one list. It is not safe for
// concurrent use; the host calls it from its layout thread only.
type Engine struct {
	source    GeometrySource
	cache     sectionCache
	offsets   offsetIndex
	active    activeSection
	width     observedWidth
	viewport  Viewport
	floatingZ int
	log       *slog.Logger
}

// New creates an engine over source. Prepare must run before any query.
func New(source GeometrySource, opts ...Option) *Engine {
	if source == nil {
		panic("floating.New: source must be provided")
	}
	e := &Engine{source: source, floatingZ: FloatingZIndex}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) debug(msg string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.Debug(msg, args...)
}

// Prepare rebuilds the section cache and offset index from the geometry
// source. It runs once per full layout pass, after the source itself has been
// laid out. The active section is cleared: every header is back at its
// default position. On error the previous state is kept.
func (e *Engine) Prepare() error {
	start := time.Now()
	n := e.source.NumberOfSections()

	var cache sectionCache
	var offsets offsetIndex
	cache.reset(n)
	offsets.reset(max(0, n-1))

	for s := range n {
		header, err := e.source.SupplementaryAttributes(layout.KindHeader, s)
		if err != nil {
			return fmt.Errorf("seed section %d %s: %w", s, layout.KindHeader, err)
		}
		footer, err := e.source.SupplementaryAttributes(layout.KindFooter, s)
		if err != nil {
			return fmt.Errorf("seed section %d %s: %w", s, layout.KindFooter, err)
		}
		cache.append(SectionRecord{Header: header, Footer: footer})
		if s > 0 && !offsets.add(header.Frame.Y) {
			return fmt.Errorf("seed section %d at y=%d: %w", s, header.Frame.Y, ErrUnsortedHeaders)
		}
	}

	e.cache = cache
	e.offsets = offsets
	e.active = activeSection{}
	e.debug("prepare", "sections", n, "elapsed", time.Since(start))
	return nil
}

// SectionCount returns the number of sections in the cache.
func (e *Engine) SectionCount() int { return e.cache.len() }

// IndexForOffset returns the section whose header floats when the top of the
// viewport is at offset. Offsets before the first boundary map to section 0
// and offsets past the last boundary map to the last section. It must not be
// called while the list has no sections.
func (e *Engine) IndexForOffset(offset int) int {
	if e.cache.len() == 0 {
		panic("floating: IndexForOffset on a list with no sections")
	}
	return e.offsets.sectionFor(offset)
}

// SetContentInset sets the content inset of the scroll container.
func (e *Engine) SetContentInset(in layout.Insets) { e.viewport.Inset = in }

// Viewport returns the last observed bounds and the current inset.
func (e *Engine) Viewport() Viewport { return e.viewport }

// ActiveSection returns the section whose header currently floats.
func (e *Engine) ActiveSection() (int, bool) {
	return e.active.index, e.active.valid
}

// Record returns a copy of the cached header and footer of section.
func (e *Engine) Record(section int) SectionRecord {
	return *e.cache.at(section)
}

// RefreshFloatingHeader moves the header of the section active at
// contentOffsetY+topInset to the top of the viewport, but never so low that
// it overlaps the section's own footer. Repeated calls with the same input
// leave the cache unchanged.
func (e *Engine) RefreshFloatingHeader(contentOffsetY, topInset int) {
	if e.cache.len() == 0 {
		return
	}
	offset := contentOffsetY + topInset
	index := e.IndexForOffset(offset)
	rec := e.cache.at(index)

	maxOffsetForHeader := rec.Footer.Frame.Y - rec.Header.Frame.Height
	rec.Header.Frame = rec.Header.Frame.WithY(min(offset, maxOffsetForHeader))
	rec.Header.ZIndex = e.floatingZ
}

// BoundsChanged records new viewport bounds and reports what went stale.
//
// A width change needs a full relayout: the host must prepare its geometry
// source and then this engine again. A pure scroll invalidates the header of
// the section now active and, when the active section changed, the header of
// the previous one, which is reset to its default position here.
func (e *Engine) BoundsChanged(newBounds layout.Rect) Invalidation {
	e.viewport.Bounds = newBounds
	if e.width.valid && e.width.value != newBounds.Width {
		e.debug("relayout", "from", e.width.value, "to", newBounds.Width)
		e.width.value = newBounds.Width
		return Invalidation{FullRelayout: true}
	}
	e.width = observedWidth{value: newBounds.Width, valid: true}

	if e.cache.len() == 0 {
		return Invalidation{}
	}

	index := e.IndexForOffset(newBounds.Y + e.viewport.Inset.Top)
	inv := Invalidation{Headers: []int{index}}
	if prev, ok := e.ActiveSection(); ok && prev != index {
		e.restoreHeader(prev)
		inv.Headers = append(inv.Headers, prev)
		e.debug("active section", "from", prev, "to", index)
	}
	e.active = activeSection{index: index, valid: true}
	return inv
}

// restoreHeader puts the header of section back where the geometry source
// places it.
func (e *Engine) restoreHeader(section int) {
	rec := e.cache.at(section)
	header, err := e.source.SupplementaryAttributes(layout.KindHeader, section)
	if err != nil {
		panic(fmt.Sprintf("floating: restore header of section %d: %v", section, err))
	}
	rec.Header = header
}

// SupplementaryAttributes returns the current header or footer of section.
// Headers are refreshed against the current viewport first, so the floating
// header is always reported at its pinned position.
func (e *Engine) SupplementaryAttributes(kind layout.ElementKind, section int) layout.Attributes {
	switch kind {
	case layout.KindHeader:
		e.RefreshFloatingHeader(e.viewport.Bounds.Y, e.viewport.Inset.Top)
		return e.cache.at(section).Header
	case layout.KindFooter:
		return e.cache.at(section).Footer
	default:
		panic(fmt.Sprintf("floating: no supplementary attributes of kind %s", kind))
	}
}

// ElementsInRect returns the elements the geometry source finds in rect with
// every header replaced by its cached, possibly floating, version. The
// floating header is appended when it was pinned into rect from outside it.
func (e *Engine) ElementsInRect(rect layout.Rect) []layout.Attributes {
	attrs := e.source.ElementsInRect(rect)
	activeSeen := false
	for i, a := range attrs {
		if a.Kind != layout.KindHeader {
			continue
		}
		attrs[i] = e.cache.at(a.Path.Section).Header
		if e.active.valid && a.Path.Section == e.active.index {
			activeSeen = true
		}
	}
	if e.active.valid && !activeSeen {
		if h := e.cache.at(e.active.index).Header; h.Frame.Intersects(rect) {
			attrs = append(attrs, h)
		}
	}
	return attrs
}

// Dump writes one line per cached section, followed by a summary line.
func (e *Engine) Dump(w io.Writer) error {
	var b strings.Builder
	for s, rec := range e.cache.records {
		fmt.Fprintf(&b, "section %d header %s z=%d footer %s z=%d\n",
			s, rec.Header.Frame, rec.Header.ZIndex, rec.Footer.Frame, rec.Footer.ZIndex)
	}
	active := "none"
	if e.active.valid {
		active = fmt.Sprint(e.active.index)
	}
	fmt.Fprintf(&b, "sections=%d active=%s offset=%d width=%d\n",
		e.cache.len(), active, e.viewport.Bounds.Y, e.viewport.Bounds.Width)
	_, err := io.WriteString(w, b.String())
	return err
}
