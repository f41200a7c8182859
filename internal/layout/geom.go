package layout

import "fmt"

// Rect is a positioned rectangle in terminal cells. Y grows downward from the
// top of the scrollable content.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect returns a Rect with the given origin and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.Height }

// IsEmpty reports whether the rectangle covers no cells.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersects reports whether r and other share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.MaxX() && other.X < r.MaxX() &&
		r.Y < other.MaxY() && other.Y < r.MaxY()
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// WithY returns a copy of r moved to the given y-origin.
func (r Rect) WithY(y int) Rect {
	r.Y = y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Insets are content insets of a scroll container.
type Insets struct {
	Top, Left, Bottom, Right int
}

// ElementKind distinguishes cells from supplementary elements.
type ElementKind int

const (
	KindCell ElementKind = iota
	KindHeader
	KindFooter
)

func (k ElementKind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindHeader:
		return "header"
	case KindFooter:
		return "footer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsSupplementary reports whether k is a header or footer.
func (k ElementKind) IsSupplementary() bool {
	return k == KindHeader || k == KindFooter
}

// IndexPath addresses an element by section and item. Supplementary elements
// always use item 0.
type IndexPath struct {
	Section int
	Item    int
}

// Attributes is the layout of one element: where it sits and how it stacks.
// It is a plain value; copies never alias.
type Attributes struct {
	Kind   ElementKind
	Path   IndexPath
	Frame  Rect
	ZIndex int
}

func (a Attributes) String() string {
	return fmt.Sprintf("%s[%d.%d] %s z=%d", a.Kind, a.Path.Section, a.Path.Item, a.Frame, a.ZIndex)
}
