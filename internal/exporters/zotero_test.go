package exporters

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/orgutils/internal/outline"
	"github.com/mrlokans/orgutils/internal/zotero"
	"github.com/mrlokans/orgutils/internal/zotero/zoterotest"
)

type fakeSource struct {
	doc         zotero.Document
	annotations []zotero.Annotation
	err         error
}

func (f *fakeSource) ResolveDocument(id string) (zotero.Document, error) {
	if f.err != nil {
		return zotero.Document{}, f.err
	}
	return f.doc, nil
}

func (f *fakeSource) ListAnnotations(docID int64) ([]zotero.Annotation, error) {
	return f.annotations, nil
}

type fakeOutliner struct {
	entries []outline.Entry
	err     error
	path    string
}

func (f *fakeOutliner) Extract(_ context.Context, path string) ([]outline.Entry, error) {
	f.path = path
	return f.entries, f.err
}

const introScenario = `* Highlights & notes

* Intro
:PROPERTIES:
:PAGE: 1
:POS_X: 10
:POS_Y: 500
:END:

#+BEGIN_QUOTE
hello (p. 1)
#+END_QUOTE

`

func TestZoteroExporter_Export(t *testing.T) {
	source := &fakeSource{
		doc:         zotero.Document{ID: 1, Path: "/storage/K/paper.pdf"},
		annotations: []zotero.Annotation{annotationAt(1, 10, 490, "hello", "")},
	}
	outliner := &fakeOutliner{entries: []outline.Entry{{Title: "Intro", Level: 1, Page: 1, X: 10, Y: 500}}}

	exporter := NewZoteroExporter(source, outliner, "Highlights & notes", 0)

	var buf bytes.Buffer
	result, err := exporter.Export(context.Background(), "1", &buf)
	require.NoError(t, err)

	assert.Equal(t, introScenario, buf.String())
	assert.Equal(t, "/storage/K/paper.pdf", outliner.path)
	assert.Equal(t, ExportResult{OutlineEntries: 1, AnnotationsWritten: 1}, result)

	t.Run("rendering twice is byte identical", func(t *testing.T) {
		var again bytes.Buffer
		_, err := exporter.Export(context.Background(), "1", &again)
		require.NoError(t, err)
		assert.Equal(t, buf.String(), again.String())
	})
}

func TestZoteroExporter_Export_NoOutline(t *testing.T) {
	source := &fakeSource{annotations: []zotero.Annotation{
		annotationAt(2, 0, 100, "", "second"),
		annotationAt(1, 0, 100, "first", ""),
		annotationAt(1, 0, 100, "", ""),
	}}

	var buf bytes.Buffer
	result, err := NewZoteroExporter(source, outline.Nop{}, "Notes", 0).Export(context.Background(), "1", &buf)
	require.NoError(t, err)

	assert.Equal(t, "* Notes\n\n#+BEGIN_QUOTE\nfirst (p. 1)\n#+END_QUOTE\n\nsecond (p. 2)\n\n", buf.String())
	assert.Equal(t, 1, result.AnnotationsDropped)
}

func TestZoteroExporter_Export_FailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name     string
		source   *fakeSource
		outliner *fakeOutliner
		check    func(t *testing.T, err error)
	}{
		{
			name:     "document not found",
			source:   &fakeSource{err: zotero.ErrNotFound},
			outliner: &fakeOutliner{},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, zotero.ErrNotFound)
			},
		},
		{
			name:     "missing position",
			source:   &fakeSource{annotations: []zotero.Annotation{{Page: 1, Text: "x"}}},
			outliner: &fakeOutliner{},
			check: func(t *testing.T, err error) {
				var missing *MissingPositionError
				assert.ErrorAs(t, err, &missing)
			},
		},
		{
			name:     "malformed outline",
			source:   &fakeSource{},
			outliner: &fakeOutliner{err: &outline.MalformedOutlineError{Reason: "'level' not found"}},
			check: func(t *testing.T, err error) {
				var malformed *outline.MalformedOutlineError
				assert.ErrorAs(t, err, &malformed)
			},
		},
		{
			name:     "outline tool failure",
			source:   &fakeSource{},
			outliner: &fakeOutliner{err: errors.New("exit status 1")},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := NewZoteroExporter(tt.source, tt.outliner, "T", 0).Export(context.Background(), "1", &buf)
			tt.check(t, err)
			assert.Empty(t, buf.String())
		})
	}
}

func TestZoteroExporter_WithStore(t *testing.T) {
	fx := zoterotest.New(t)
	fx.AddAttachment(42, "ABCD1234", "paper.pdf")
	fx.AddAnnotation(42, "1", `{"pageIndex":0,"rects":[[10,0,0,490]]}`, "hello", "")

	outliner := &fakeOutliner{entries: []outline.Entry{{Title: "Intro", Level: 1, Page: 1, X: 10, Y: 500}}}
	exporter := NewZoteroExporter(zotero.NewStore(fx.Dir), outliner, "Highlights & notes", 0)

	var buf bytes.Buffer
	_, err := exporter.Export(context.Background(), "ABCD1234", &buf)
	require.NoError(t, err)
	assert.Equal(t, introScenario, buf.String())
}
