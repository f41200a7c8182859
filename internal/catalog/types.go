// Package catalog produces the sections a stickit list shows, either by
// walking a directory tree and grouping files by folder or by reading a YAML
// manifest, and narrows them with a fuzzy filter.
package catalog

import "path/filepath"

// Item is one entry of a section.
type Item struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Section is a titled group of items.
type Section struct {
	Title string `yaml:"title"`
	Items []Item `yaml:"items"`
}

// Catalog is an ordered list of sections.
type Catalog struct {
	Root     string    `yaml:"-"`
	Sections []Section `yaml:"sections"`
}

// Counts returns the number of items in each section, in order.
func (c Catalog) Counts() []int {
	counts := make([]int, len(c.Sections))
	for i, s := range c.Sections {
		counts[i] = len(s.Items)
	}
	return counts
}

// Len returns the total number of items.
func (c Catalog) Len() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Items)
	}
	return n
}

// Item returns the item at section/index, or false when either is out of
// range.
func (c Catalog) Item(section, index int) (Item, bool) {
	if section < 0 || section >= len(c.Sections) {
		return Item{}, false
	}
	items := c.Sections[section].Items
	if index < 0 || index >= len(items) {
		return Item{}, false
	}
	return items[index], true
}

// Titles returns the section titles, in order.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		titles[i] = s.Title
	}
	return titles
}

// ResolvePath returns the item path made absolute against the catalog root.
func (c Catalog) ResolvePath(it Item) string {
	if it.Path == "" || filepath.IsAbs(it.Path) || c.Root == "" {
		return it.Path
	}
	return filepath.Join(c.Root, it.Path)
}
