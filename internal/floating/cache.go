package floating

import (
	"fmt"

	"github.com/daptify14/stickit/internal/layout"
)

// SectionRecord is the current header and footer layout of one section.
type SectionRecord struct {
	Header layout.Attributes
	Footer layout.Attributes
}

// sectionCache is indexed by section. Only the engine mutates it, and only
// the Header of the floating section and of the section it replaces.
type sectionCache struct {
	records []SectionRecord
}

func (c *sectionCache) reset(capacity int) {
	c.records = make([]SectionRecord, 0, capacity)
}

func (c *sectionCache) append(r SectionRecord) {
	c.records = append(c.records, r)
}

func (c *sectionCache) len() int { return len(c.records) }

// at returns the record for section. An out-of-range section is a caller bug.
func (c *sectionCache) at(section int) *SectionRecord {
	if section < 0 || section >= len(c.records) {
		panic(fmt.Sprintf("floating: section %d out of range [0,%d)", section, len(c.records)))
	}
	return &c.records[section]
}
