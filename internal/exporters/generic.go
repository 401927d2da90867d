package exporters

import (
	"github.com/mrlokans/orgutils/internal/zotero"
)

// AnnotationSource resolves documents and their annotations.
type AnnotationSource interface {
	ResolveDocument(id string) (zotero.Document, error)
	ListAnnotations(docID int64) ([]zotero.Annotation, error)
}

// Converter turns markup text into another format.
type Converter interface {
	Convert(markup string, format string) (string, error)
}

type ExportResult struct {
	OutlineEntries     int `json:"outline_entries"`
	AnnotationsWritten int `json:"annotations_written"`
	AnnotationsDropped int `json:"annotations_dropped"`
}
