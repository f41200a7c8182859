package tui

// headerCache holds rendered section header lines keyed by section. Entries
// stay valid until the floating engine reports the section's header stale.
type headerCache struct {
	lines       map[int][]string
	lastEvicted []int
}

func newHeaderCache() headerCache {
	return headerCache{lines: make(map[int][]string, 16)}
}

func (c headerCache) get(section int) ([]string, bool) {
	l, ok := c.lines[section]
	return l, ok
}

// put stores rendered lines. The map is shared between model copies, so a
// render from View fills the cache seen by the next Update.
func (c headerCache) put(section int, lines []string) {
	c.lines[section] = lines
}

func (c *headerCache) evict(sections []int) {
	for _, s := range sections {
		delete(c.lines, s)
	}
	c.lastEvicted = append(c.lastEvicted[:0:0], sections...)
}

func (c *headerCache) clear() {
	c.lines = make(map[int][]string, 16)
	c.lastEvicted = nil
}
