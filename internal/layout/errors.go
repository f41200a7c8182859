package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the flow layout.
var (
	ErrNotPrepared       = errors.New("layout not prepared")
	ErrSectionOutOfRange = errors.New("section out of range")
	ErrUnknownKind       = errors.New("unknown supplementary kind")
)

// Error describes a failed geometry query.
type Error struct {
	Op      string
	Section int
	Kind    ElementKind
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout %s %s section %d: %v", e.Op, e.Kind, e.Section, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
