package kindle

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mrlokans/orgutils/internal/config"
	"github.com/mrlokans/orgutils/internal/org"
	"github.com/mrlokans/orgutils/internal/utils"
)

// MissingHeadingText stands in for a heading note whose highlight text could
// not be found at or next to its location.
const MissingHeadingText = "--MISSING--"

var (
	vocabNotePattern   = regexp.MustCompile(`^(?:[vV]ocab|語彙|表現)\s*(|.*)$`)
	headingNotePattern = regexp.MustCompile(`^[hH](\d+)(|\s+(.*))$`)
)

// Converter turns a Book into Org nodes. Highlights whose note reads
// "h<N> [title]" become headings, "vocab [term]" notes are collected into a
// separate vocabulary tree, everything else becomes a quote.
type Converter struct {
	BaseHeadingDepth int
	Lang             string
}

func NewConverter(baseHeadingDepth int, lang string) *Converter {
	return &Converter{BaseHeadingDepth: baseHeadingDepth, Lang: lang}
}

func (c *Converter) preprocess(s string) string {
	if c.Lang == config.LangJapanese {
		return utils.RemoveWhitespacesBetweenZenkaku(s)
	}
	return s
}

// Convert returns the main highlight tree and the vocabulary tree. The
// vocabulary tree always starts with a "Vocab" heading.
func (c *Converter) Convert(book Book) (main, vocab []org.Node) {
	items := sortHighlights(book.Highlights)

	main = append(main, org.Heading{
		Title:      c.preprocess(book.Title),
		Level:      1,
		Properties: org.Props("author", book.Authors, "asin", book.ASIN),
	})
	vocab = append(vocab, org.Heading{Title: "Vocab", Level: 1})

	for idx, item := range items {
		if m := vocabNotePattern.FindStringSubmatch(item.Note); m != nil {
			term := m[1]
			if term == "" {
				term = item.Text
			}
			vocab = append(vocab,
				org.Heading{
					Title:      c.preprocess(term),
					Level:      1 + c.BaseHeadingDepth,
					Properties: org.Props("kindle_loc", item.Location),
				},
				org.QuoteBlock{Content: c.quote(item)},
			)
			continue
		}

		if m := headingNotePattern.FindStringSubmatch(item.Note); m != nil {
			depth, _ := strconv.Atoi(m[1])
			title := m[3]
			if title == "" {
				title = item.Text
			}
			if title == "" {
				title = nearestHeadingText(items, idx)
			}
			main = append(main, org.Heading{
				Title:      c.preprocess(title),
				Level:      depth + c.BaseHeadingDepth,
				Properties: org.Props("kindle_loc", item.Location),
			})
			continue
		}

		if item.Text != "" {
			main = append(main, org.QuoteBlock{Content: c.quote(item)})
		}
		if item.Note != "" {
			main = append(main, org.Paragraph{Content: item.Note})
		}
	}

	return main, vocab
}

// Export writes the main tree followed by the vocabulary tree.
func (c *Converter) Export(book Book, w io.Writer) error {
	main, vocab := c.Convert(book)
	if _, err := fmt.Fprintln(w, org.Dumps(main)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, org.Dumps(vocab))
	return err
}

func (c *Converter) quote(h Highlight) string {
	return fmt.Sprintf("%s (loc. %d)", c.preprocess(h.Text), h.Location)
}

// sortHighlights orders by location; heading notes come first within a
// location so the heading precedes the passages it introduces.
func sortHighlights(highlights []Highlight) []Highlight {
	items := make([]Highlight, len(highlights))
	copy(items, highlights)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Location != items[j].Location {
			return items[i].Location < items[j].Location
		}
		return isHeadingNote(items[i].Note) && !isHeadingNote(items[j].Note)
	})
	return items
}

func isHeadingNote(note string) bool {
	return strings.HasPrefix(note, "h") || strings.HasPrefix(note, "H")
}

// nearestHeadingText handles a heading note stored apart from its highlight:
// the closest neighbour within one location supplies the title, shorter text
// winning ties.
func nearestHeadingText(items []Highlight, idx int) string {
	best := -1
	for _, n := range []int{idx + 1, idx - 1} {
		if n < 0 || n >= len(items) {
			continue
		}
		if best == -1 || closer(items[n], items[best], items[idx].Location) {
			best = n
		}
	}
	if best == -1 || abs(items[best].Location-items[idx].Location) > 1 {
		return MissingHeadingText
	}
	return items[best].Text
}

func closer(a, b Highlight, loc int) bool {
	da, db := abs(a.Location-loc), abs(b.Location-loc)
	if da != db {
		return da < db
	}
	return len(a.Text) < len(b.Text)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
