package exporters

import (
	"fmt"
	"sort"

	"github.com/mrlokans/orgutils/internal/org"
	"github.com/mrlokans/orgutils/internal/outline"
	"github.com/mrlokans/orgutils/internal/utils"
	"github.com/mrlokans/orgutils/internal/zotero"
)

// SortKey orders items in reading order: by page, then top of the page
// first (PDF y grows upwards, hence NegY), then left to right.
type SortKey struct {
	Page int
	NegY float64
	X    float64
}

func (k SortKey) Less(o SortKey) bool {
	if k.Page != o.Page {
		return k.Page < o.Page
	}
	if k.NegY != o.NegY {
		return k.NegY < o.NegY
	}
	return k.X < o.X
}

// KeyAt builds the key for an anchor at (x, y) on page.
func KeyAt(page int, x, y float64) SortKey {
	return SortKey{Page: page, NegY: -y, X: x}
}

// titleKey sorts before any real page.
var titleKey = SortKey{Page: -1}

type OrderedItem struct {
	Key  SortKey
	Node org.Node
}

// MissingPositionError reports an annotation stored without rectangles.
type MissingPositionError struct {
	Page int
}

func (e *MissingPositionError) Error() string {
	return fmt.Sprintf("annotation on page %d has no position rects", e.Page)
}

func TitleItem(title string) OrderedItem {
	return OrderedItem{Key: titleKey, Node: org.Heading{Title: title, Level: 1}}
}

// OutlineItems turns outline entries into headings. offset is added to every
// entry level.
func OutlineItems(entries []outline.Entry, offset int) []OrderedItem {
	items := make([]OrderedItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, OrderedItem{
			Key: KeyAt(e.Page, e.X, e.Y),
			Node: org.Heading{
				Title:      e.Title,
				Level:      e.Level + offset,
				Properties: org.Props("page", e.Page, "pos_x", e.X, "pos_y", e.Y),
			},
		})
	}
	return items
}

// AnnotationItem converts one annotation. The anchor is the left edge and top
// of its first rectangle. ok is false when the annotation has neither text
// nor comment.
func AnnotationItem(a zotero.Annotation) (item OrderedItem, ok bool, err error) {
	if len(a.Position.Rects) == 0 || len(a.Position.Rects[0]) == 0 {
		return OrderedItem{}, false, &MissingPositionError{Page: a.Page}
	}
	first := a.Position.Rects[0]
	x, y := first[0], first[len(first)-1]

	var nodes []org.Node
	if a.Text != "" {
		nodes = append(nodes, org.QuoteBlock{
			Content: fmt.Sprintf("%s (p. %d)", utils.RemoveWhitespacesBetweenZenkaku(a.Text), a.Page),
		})
	}
	if a.Comment != "" {
		nodes = append(nodes, org.Paragraph{Content: fmt.Sprintf("%s (p. %d)", a.Comment, a.Page)})
	}

	switch len(nodes) {
	case 0:
		return OrderedItem{}, false, nil
	case 1:
		return OrderedItem{Key: KeyAt(a.Page, x, y), Node: nodes[0]}, true, nil
	default:
		return OrderedItem{Key: KeyAt(a.Page, x, y), Node: org.Group{Nodes: nodes}}, true, nil
	}
}

// AnnotationItems converts annotations, dropping empty ones. It fails on the
// first annotation without a position.
func AnnotationItems(annotations []zotero.Annotation) ([]OrderedItem, int, error) {
	items := make([]OrderedItem, 0, len(annotations))
	dropped := 0
	for _, a := range annotations {
		item, ok, err := AnnotationItem(a)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped, nil
}

// Merge puts title first and stably sorts the remaining items by key.
// Items with equal keys keep their input order, so an outline heading
// precedes an annotation sharing its anchor when outline items come first.
func Merge(title OrderedItem, groups ...[]OrderedItem) []OrderedItem {
	var rest []OrderedItem
	for _, g := range groups {
		rest = append(rest, g...)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Key.Less(rest[j].Key)
	})
	return append([]OrderedItem{title}, rest...)
}

// Nodes strips the keys.
func Nodes(items []OrderedItem) []org.Node {
	nodes := make([]org.Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, it.Node)
	}
	return nodes
}
