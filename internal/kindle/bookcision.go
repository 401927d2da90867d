package kindle

import (
	"encoding/json"
	"fmt"
	"io"
)

type bookcisionExport struct {
	ASIN       string                `json:"asin"`
	Title      string                `json:"title"`
	Authors    string                `json:"authors"`
	Highlights []bookcisionHighlight `json:"highlights"`
}

type bookcisionHighlight struct {
	Text     string  `json:"text"`
	Note     *string `json:"note"`
	Location struct {
		Value int `json:"value"`
	} `json:"location"`
}

// ParseBookcision reads the JSON produced by Bookcision from the Kindle
// Cloud Reader notebook.
func ParseBookcision(r io.Reader) (*Book, error) {
	var export bookcisionExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("failed to decode Bookcision export: %w", err)
	}
	if export.Title == "" {
		return nil, fmt.Errorf("bookcision export has no title")
	}

	book := &Book{
		Title:      export.Title,
		Authors:    export.Authors,
		ASIN:       export.ASIN,
		Highlights: make([]Highlight, 0, len(export.Highlights)),
	}
	for _, h := range export.Highlights {
		highlight := Highlight{
			Text:     h.Text,
			Location: h.Location.Value,
		}
		if h.Note != nil {
			highlight.Note = *h.Note
		}
		book.Highlights = append(book.Highlights, highlight)
	}

	return book, nil
}
