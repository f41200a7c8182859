// Package layout holds the geometry types shared by the list host and the
// floating-header engine, and Flow, the default (non-floating) flow layout
// that places section headers, item grids and footers for a given width.
package layout

import "fmt"

// Metrics are the fixed sizes a Flow uses when placing elements.
type Metrics struct {
	HeaderHeight int
	FooterHeight int
	ItemHeight   int
	ColumnWidth  int // minimum width of one item column
	ColumnGap    int
	SectionGap   int // blank rows after each footer
}

// DefaultMetrics returns metrics suited to a one-line-per-row terminal list.
func DefaultMetrics() Metrics {
	return Metrics{
		HeaderHeight: 1,
		FooterHeight: 1,
		ItemHeight:   1,
		ColumnWidth:  28,
		ColumnGap:    2,
		SectionGap:   0,
	}
}

type sectionGeometry struct {
	header Attributes
	footer Attributes
	items  []Attributes
}

// Flow is a vertical flow layout: each section is a header, a grid of items
// wrapped into as many columns as fit the width, and a footer. Every element
// has a default, non-floating position that depends only on the item counts,
// the metrics and the width passed to Prepare.
type Flow struct {
	metrics  Metrics
	counts   []int
	width    int
	columns  int
	height   int
	sections []sectionGeometry
	prepared bool
}

// NewFlow creates a flow layout for sections with the given item counts.
func NewFlow(metrics Metrics, counts []int) *Flow {
	f := &Flow{metrics: metrics}
	f.SetCounts(counts)
	return f
}

// SetCounts replaces the per-section item counts. The layout must be prepared
// again before it is queried.
func (f *Flow) SetCounts(counts []int) {
	f.counts = append(f.counts[:0:0], counts...)
	f.prepared = false
}

// Metrics returns the metrics in use.
func (f *Flow) Metrics() Metrics { return f.metrics }

// NumberOfSections returns the number of sections.
func (f *Flow) NumberOfSections() int { return len(f.counts) }

// ItemCount returns the number of items in section.
func (f *Flow) ItemCount(section int) int {
	if section < 0 || section >= len(f.counts) {
		return 0
	}
	return f.counts[section]
}

// Width returns the width the layout was last prepared for.
func (f *Flow) Width() int { return f.width }

// Columns returns the number of item columns at the prepared width.
func (f *Flow) Columns() int { return f.columns }

// ContentHeight returns the total height of all sections.
func (f *Flow) ContentHeight() int { return f.height }

// columnsFor returns how many item columns fit in width. At least one column
// is always used.
func columnsFor(width int, m Metrics) int {
	if m.ColumnWidth <= 0 || width <= m.ColumnWidth {
		return 1
	}
	return max(1, (width+m.ColumnGap)/(m.ColumnWidth+m.ColumnGap))
}

// Prepare computes the default geometry of every element for width.
func (f *Flow) Prepare(width int) {
	m := f.metrics
	f.width = max(0, width)
	f.columns = columnsFor(f.width, m)
	colWidth := f.width
	if f.columns > 1 {
		colWidth = (f.width - (f.columns-1)*m.ColumnGap) / f.columns
	}

	f.sections = make([]sectionGeometry, len(f.counts))
	y := 0
	for s, count := range f.counts {
		g := sectionGeometry{
			header: Attributes{
				Kind:  KindHeader,
				Path:  IndexPath{Section: s},
				Frame: NewRect(0, y, f.width, m.HeaderHeight),
			},
			items: make([]Attributes, count),
		}
		y += m.HeaderHeight

		rows := (count + f.columns - 1) / f.columns
		for i := range count {
			row, col := i/f.columns, i%f.columns
			g.items[i] = Attributes{
				Kind:  KindCell,
				Path:  IndexPath{Section: s, Item: i},
				Frame: NewRect(col*(colWidth+m.ColumnGap), y+row*m.ItemHeight, colWidth, m.ItemHeight),
			}
		}
		y += rows * m.ItemHeight

		g.footer = Attributes{
			Kind:  KindFooter,
			Path:  IndexPath{Section: s},
			Frame: NewRect(0, y, f.width, m.FooterHeight),
		}
		y += m.FooterHeight + m.SectionGap
		f.sections[s] = g
	}
	f.height = y
	f.prepared = true
}

// SupplementaryAttributes returns the default header or footer of section.
func (f *Flow) SupplementaryAttributes(kind ElementKind, section int) (Attributes, error) {
	if !f.prepared {
		return Attributes{}, &Error{Op: "supplementary", Section: section, Kind: kind, Err: ErrNotPrepared}
	}
	if section < 0 || section >= len(f.sections) {
		return Attributes{}, &Error{Op: "supplementary", Section: section, Kind: kind, Err: ErrSectionOutOfRange}
	}
	switch kind {
	case KindHeader:
		return f.sections[section].header, nil
	case KindFooter:
		return f.sections[section].footer, nil
	default:
		return Attributes{}, &Error{Op: "supplementary", Section: section, Kind: kind, Err: ErrUnknownKind}
	}
}

// ItemAttributes returns the default attributes of one cell.
func (f *Flow) ItemAttributes(path IndexPath) (Attributes, error) {
	if !f.prepared {
		return Attributes{}, &Error{Op: "item", Section: path.Section, Kind: KindCell, Err: ErrNotPrepared}
	}
	if path.Section < 0 || path.Section >= len(f.sections) {
		return Attributes{}, &Error{Op: "item", Section: path.Section, Kind: KindCell, Err: ErrSectionOutOfRange}
	}
	items := f.sections[path.Section].items
	if path.Item < 0 || path.Item >= len(items) {
		return Attributes{}, &Error{Op: "item", Section: path.Section, Kind: KindCell,
			Err: fmt.Errorf("item %d of %d: %w", path.Item, len(items), ErrSectionOutOfRange)}
	}
	return items[path.Item], nil
}

// ElementsInRect returns the default attributes of every element that
// intersects rect, in section order: header, cells, footer.
func (f *Flow) ElementsInRect(rect Rect) []Attributes {
	if !f.prepared {
		return nil
	}
	var out []Attributes
	for _, g := range f.sections {
		if g.footer.Frame.MaxY() <= rect.Y {
			continue
		}
		if g.header.Frame.Y >= rect.MaxY() {
			break
		}
		if g.header.Frame.Intersects(rect) {
			out = append(out, g.header)
		}
		for _, item := range g.items {
			if item.Frame.Y >= rect.MaxY() {
				break
			}
			if item.Frame.Intersects(rect) {
				out = append(out, item)
			}
		}
		if g.footer.Frame.Intersects(rect) {
			out = append(out, g.footer)
		}
	}
	return out
}
