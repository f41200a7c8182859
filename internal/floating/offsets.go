package floating

import "slices"

// offsetIndex holds the header y-origins of sections 1..n-1 in ascending
// order. Section 0 is never stored: it is active from offset 0 onward until
// the first stored boundary is passed.
type offsetIndex struct {
	offsets []int
}

func (o *offsetIndex) reset(capacity int) {
	o.offsets = make([]int, 0, capacity)
}

// add appends the header origin of the next section. Origins must arrive in
// non-decreasing order; add reports false otherwise.
func (o *offsetIndex) add(y int) bool {
	if n := len(o.offsets); n > 0 && y < o.offsets[n-1] {
		return false
	}
	o.offsets = append(o.offsets, y)
	return true
}

// sectionFor returns the number of stored origins strictly less than offset,
// which is the index of the section active at offset.
func (o offsetIndex) sectionFor(offset int) int {
	i, _ := slices.BinarySearch(o.offsets, offset)
	return i
}

func (o offsetIndex) len() int { return len(o.offsets) }
