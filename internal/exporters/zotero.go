package exporters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/mrlokans/orgutils/internal/org"
	"github.com/mrlokans/orgutils/internal/outline"
)

// ZoteroExporter renders a document's outline and annotations as one Org
// document in reading order.
type ZoteroExporter struct {
	Source        AnnotationSource
	Outliner      outline.Extractor
	TitleHeading  string
	HeadingOffset int
	Verbose       bool
	Result        ExportResult
}

func NewZoteroExporter(source AnnotationSource, outliner outline.Extractor, titleHeading string, headingOffset int) *ZoteroExporter {
	return &ZoteroExporter{
		Source:        source,
		Outliner:      outliner,
		TitleHeading:  titleHeading,
		HeadingOffset: headingOffset,
	}
}

// Build resolves the document and returns the ordered items.
func (e *ZoteroExporter) Build(ctx context.Context, id string) ([]OrderedItem, error) {
	e.Result = ExportResult{}

	doc, err := e.Source.ResolveDocument(id)
	if err != nil {
		return nil, err
	}
	if e.Verbose {
		log.Printf("Resolved %s to item %d at %s", id, doc.ID, doc.Path)
	}

	entries, err := e.Outliner.Extract(ctx, doc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract outline: %w", err)
	}
	if entries == nil && e.Verbose {
		log.Printf("No outline found for %s", doc.Path)
	}

	annotations, err := e.Source.ListAnnotations(doc.ID)
	if err != nil {
		return nil, err
	}

	annotationItems, dropped, err := AnnotationItems(annotations)
	if err != nil {
		return nil, err
	}

	e.Result.OutlineEntries = len(entries)
	e.Result.AnnotationsWritten = len(annotationItems)
	e.Result.AnnotationsDropped = dropped

	return Merge(TitleItem(e.TitleHeading), OutlineItems(entries, e.HeadingOffset), annotationItems), nil
}

// Export writes the rendered document to w. Nothing is written when any
// step fails.
func (e *ZoteroExporter) Export(ctx context.Context, id string, w io.Writer) (ExportResult, error) {
	items, err := e.Build(ctx, id)
	if err != nil {
		return ExportResult{}, err
	}

	var buf bytes.Buffer
	if err := org.Write(&buf, Nodes(items)); err != nil {
		return ExportResult{}, err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write output: %w", err)
	}

	return e.Result, nil
}
