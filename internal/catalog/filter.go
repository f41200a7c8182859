package catalog

import (
	"path"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter returns the sections of c that contain at least one item fuzzily
// matching query. Each item is matched as "section title/item name", so a
// query can target a folder as well as a file. Matching items keep their
// original order. An empty query returns c unchanged.
func Filter(c Catalog, query string) Catalog {
	query = strings.TrimSpace(query)
	if query == "" {
		return c
	}

	type ref struct{ section, item int }
	var (
		keys []string
		refs []ref
	)
	for s, sec := range c.Sections {
		for i, it := range sec.Items {
			keys = append(keys, path.Join(sec.Title, it.Name))
			refs = append(refs, ref{s, i})
		}
	}

	matches := fuzzy.Find(query, keys)
	hit := make([]ref, 0, len(matches))
	for _, m := range matches {
		hit = append(hit, refs[m.Index])
	}
	slices.SortFunc(hit, func(a, b ref) int {
		if a.section != b.section {
			return a.section - b.section
		}
		return a.item - b.item
	})

	out := Catalog{Root: c.Root}
	lastSection := -1
	for _, h := range hit {
		sec := c.Sections[h.section]
		if h.section != lastSection {
			out.Sections = append(out.Sections, Section{Title: sec.Title})
			lastSection = h.section
		}
		last := &out.Sections[len(out.Sections)-1]
		last.Items = append(last.Items, sec.Items[h.item])
	}
	return out
}
