package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads a YAML manifest of sections. Relative item paths are
// resolved against the manifest's directory.
func LoadManifest(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	c, err := ParseManifest(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		c.Root = abs
	}
	return c, nil
}

// ParseManifest decodes a manifest of the form
//
//	sections:
//	  - title: Docs
//	    items:
//	      - name: Readme
//	        path: README.md
//
// Untitled sections are named after their position and unnamed items after
// the base name of their path.
func ParseManifest(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse: %w", err)
	}
	if len(c.Sections) == 0 {
		return Catalog{}, ErrEmptyManifest
	}
	for i := range c.Sections {
		s := &c.Sections[i]
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			s.Title = fmt.Sprintf("Section %d", i+1)
		}
		for j := range s.Items {
			it := &s.Items[j]
			it.Name = strings.TrimSpace(it.Name)
			if it.Name == "" && it.Path != "" {
				it.Name = filepath.Base(it.Path)
			}
		}
	}
	return c, nil
}
