package exporters

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/orgutils/internal/org"
	"github.com/mrlokans/orgutils/internal/outline"
	"github.com/mrlokans/orgutils/internal/zotero"
)

func annotationAt(page int, x, y float64, text, comment string) zotero.Annotation {
	return zotero.Annotation{
		Page:     page,
		Position: zotero.Position{Rects: [][]float64{{x, 0, 0, y}}},
		Text:     text,
		Comment:  comment,
	}
}

func TestSortKey_Less(t *testing.T) {
	tests := []struct {
		name string
		a, b SortKey
		want bool
	}{
		{name: "lower page first", a: KeyAt(1, 500, 10), b: KeyAt(2, 0, 800), want: true},
		{name: "higher y first on same page", a: KeyAt(1, 0, 700), b: KeyAt(1, 0, 100), want: true},
		{name: "lower y after", a: KeyAt(1, 0, 100), b: KeyAt(1, 0, 700), want: false},
		{name: "lower x first on same line", a: KeyAt(1, 10, 100), b: KeyAt(1, 20, 100), want: true},
		{name: "equal keys are not less", a: KeyAt(1, 10, 100), b: KeyAt(1, 10, 100), want: false},
		{name: "title key before page zero", a: titleKey, b: KeyAt(0, 0, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Less(tt.b))
		})
	}
}

func TestAnnotationItem(t *testing.T) {
	t.Run("text only renders a quote block", func(t *testing.T) {
		item, ok, err := AnnotationItem(annotationAt(3, 10, 490, "hello", ""))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, org.QuoteBlock{Content: "hello (p. 3)"}, item.Node)
		assert.Equal(t, SortKey{Page: 3, NegY: -490, X: 10}, item.Key)
	})

	t.Run("comment only renders a paragraph", func(t *testing.T) {
		item, ok, err := AnnotationItem(annotationAt(2, 0, 0, "", "think about this"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, org.Paragraph{Content: "think about this (p. 2)"}, item.Node)
	})

	t.Run("text and comment are grouped", func(t *testing.T) {
		item, ok, err := AnnotationItem(annotationAt(1, 0, 0, "quote", "note"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, org.Group{Nodes: []org.Node{
			org.QuoteBlock{Content: "quote (p. 1)"},
			org.Paragraph{Content: "note (p. 1)"},
		}}, item.Node)
	})

	t.Run("neither text nor comment is dropped", func(t *testing.T) {
		_, ok, err := AnnotationItem(annotationAt(1, 0, 0, "", ""))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty rects fail instead of defaulting to zero", func(t *testing.T) {
		_, _, err := AnnotationItem(zotero.Annotation{Page: 4, Text: "x"})
		var missing *MissingPositionError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 4, missing.Page)
	})

	t.Run("japanese text loses spurious spaces", func(t *testing.T) {
		item, _, err := AnnotationItem(annotationAt(1, 0, 0, "日本 語", ""))
		require.NoError(t, err)
		assert.Equal(t, org.QuoteBlock{Content: "日本語 (p. 1)"}, item.Node)
	})

	t.Run("uses last coordinate of first rect as y", func(t *testing.T) {
		a := zotero.Annotation{Page: 1, Text: "x", Position: zotero.Position{Rects: [][]float64{{5, 100, 200, 120}, {1, 1, 1, 999}}}}
		item, _, err := AnnotationItem(a)
		require.NoError(t, err)
		assert.Equal(t, SortKey{Page: 1, NegY: -120, X: 5}, item.Key)
	})
}

func TestAnnotationItems(t *testing.T) {
	t.Run("counts dropped annotations", func(t *testing.T) {
		items, dropped, err := AnnotationItems([]zotero.Annotation{
			annotationAt(1, 0, 0, "a", ""),
			annotationAt(1, 0, 0, "", ""),
		})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, dropped)
	})

	t.Run("missing position fails the whole batch", func(t *testing.T) {
		_, _, err := AnnotationItems([]zotero.Annotation{
			annotationAt(1, 0, 0, "a", ""),
			{Page: 2, Comment: "no rects"},
		})
		var missing *MissingPositionError
		assert.ErrorAs(t, err, &missing)
	})
}

func TestOutlineItems(t *testing.T) {
	entries := []outline.Entry{{Title: "Intro", Level: 1, Page: 1, X: 10, Y: 500}}

	t.Run("level is used as depth", func(t *testing.T) {
		items := OutlineItems(entries, 0)
		require.Len(t, items, 1)
		assert.Equal(t, org.Heading{
			Title:      "Intro",
			Level:      1,
			Properties: org.Props("page", 1, "pos_x", 10.0, "pos_y", 500.0),
		}, items[0].Node)
		assert.Equal(t, KeyAt(1, 10, 500), items[0].Key)
	})

	t.Run("offset nests headings deeper", func(t *testing.T) {
		items := OutlineItems(entries, 1)
		assert.Equal(t, 2, items[0].Node.(org.Heading).Level)
	})
}

func TestMerge_TitleAlwaysFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		var items []OrderedItem
		for j := 0; j < 20; j++ {
			items = append(items, OrderedItem{
				Key:  KeyAt(rng.Intn(5), rng.Float64()*600, rng.Float64()*800),
				Node: org.Paragraph{Content: "p"},
			})
		}

		merged := Merge(TitleItem("Title"), items)
		require.Len(t, merged, 21)
		assert.Equal(t, org.Heading{Title: "Title", Level: 1}, merged[0].Node)
		for k := 2; k < len(merged); k++ {
			assert.False(t, merged[k].Key.Less(merged[k-1].Key), "items must be sorted")
		}
	}
}

func TestMerge_StableForEqualKeys(t *testing.T) {
	key := KeyAt(2, 50, 300)
	outlineItems := []OrderedItem{{Key: key, Node: org.Heading{Title: "Section", Level: 1}}}
	annotationItems := []OrderedItem{
		{Key: KeyAt(3, 0, 0), Node: org.Paragraph{Content: "later"}},
		{Key: key, Node: org.Paragraph{Content: "first tie"}},
		{Key: key, Node: org.Paragraph{Content: "second tie"}},
	}

	merged := Merge(TitleItem("T"), outlineItems, annotationItems)

	assert.Equal(t, []org.Node{
		org.Heading{Title: "T", Level: 1},
		org.Heading{Title: "Section", Level: 1},
		org.Paragraph{Content: "first tie"},
		org.Paragraph{Content: "second tie"},
		org.Paragraph{Content: "later"},
	}, Nodes(merged))
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge(TitleItem("Only title"))
	assert.Equal(t, "* Only title\n", org.Dumps(Nodes(merged)))
}
