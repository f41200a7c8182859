package catalog

import "errors"

// Sentinel errors returned while building a catalog.
var (
	ErrEmptyRoot     = errors.New("catalog root is empty")
	ErrNotDir        = errors.New("catalog root is not a directory")
	ErrEmptyManifest = errors.New("manifest has no sections")
)
