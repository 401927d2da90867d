package zotero

import "errors"

var (
	// ErrNotFound indicates the requested document has no annotated attachment
	ErrNotFound = errors.New("document not found")

	// ErrDataDirNotFound indicates no directory with zotero.sqlite was found
	ErrDataDirNotFound = errors.New("zotero data directory not found")
)
