// Package outline reads a document's table of contents.
package outline

import (
	"context"
	"fmt"
)

// Entry is one table-of-contents node. Entries come as a flat list; Level
// alone carries the nesting.
type Entry struct {
	Title string
	Level int
	Page  int
	X     float64
	Y     float64
}

// Extractor returns the outline of the file at path. A nil slice with a nil
// error means the document has no outline.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Entry, error)
}

// MalformedOutlineError reports outline data that breaks the dumper's
// output contract.
type MalformedOutlineError struct {
	Title  string
	Reason string
}

func (e *MalformedOutlineError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("malformed outline: %s", e.Reason)
	}
	return fmt.Sprintf("malformed outline entry %q: %s", e.Title, e.Reason)
}

// Nop never finds an outline.
type Nop struct{}

func (Nop) Extract(context.Context, string) ([]Entry, error) {
	return nil, nil
}
