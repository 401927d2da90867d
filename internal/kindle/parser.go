package kindle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Entry types in Kindle clippings
type EntryType string

const (
	EntryTypeHighlight EntryType = "highlight"
	EntryTypeNote      EntryType = "note"
	EntryTypeBookmark  EntryType = "bookmark"
)

// ClippingEntry represents a single parsed entry from My Clippings.txt
type ClippingEntry struct {
	Title    string
	Author   string
	Type     EntryType
	Page     int
	Location int
	Text     string
}

// Position is the location used for ordering, falling back to the page
// for documents without Kindle locations.
func (e ClippingEntry) Position() int {
	if e.Location > 0 {
		return e.Location
	}
	return e.Page
}

// Parser parses Kindle My Clippings.txt format
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

const entrySeparator = "=========="

var (
	// "- Your Highlight on page 8 | Location 64-64 | Added on ..."
	// "- Your Bookmark at location 346 | Added on ..."
	metadataPattern = regexp.MustCompile(`^- Your (Highlight|Note|Bookmark)`)

	pagePattern     = regexp.MustCompile(`(?i)(?:on )?page (\d+)`)
	locationPattern = regexp.MustCompile(`(?i)(?:at )?location (\d+)`)

	// "Book Title (Author Name)"; some books have no author part
	titleAuthorPattern = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
)

// Parse reads a My Clippings.txt file and returns one Book per title, in the
// order titles first appear.
func (p *Parser) Parse(r io.Reader) ([]Book, error) {
	entries, err := p.ParseEntries(r)
	if err != nil {
		return nil, err
	}

	return groupEntriesIntoBooks(entries), nil
}

// ParseEntries parses individual clipping entries, skipping bookmarks and
// entries without text.
func (p *Parser) ParseEntries(r io.Reader) ([]ClippingEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []ClippingEntry
	var currentLines []string

	flush := func() {
		if len(currentLines) == 0 {
			return
		}
		if entry, ok := parseEntry(currentLines); ok {
			entries = append(entries, entry)
		}
		currentLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")
		if line == entrySeparator {
			flush()
			continue
		}
		currentLines = append(currentLines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading clippings: %w", err)
	}

	// Last entry when the file doesn't end with a separator
	flush()

	return entries, nil
}

func parseEntry(lines []string) (ClippingEntry, bool) {
	if len(lines) < 2 {
		return ClippingEntry{}, false
	}

	titleLine := strings.TrimSpace(lines[0])
	if titleLine == "" {
		return ClippingEntry{}, false
	}
	title, author := parseTitleAuthor(titleLine)

	metadataLine := strings.TrimSpace(lines[1])
	if !metadataPattern.MatchString(metadataLine) {
		return ClippingEntry{}, false
	}

	entryType := parseEntryType(metadataLine)
	if entryType == EntryTypeBookmark {
		return ClippingEntry{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	if text == "" {
		return ClippingEntry{}, false
	}

	return ClippingEntry{
		Title:    title,
		Author:   author,
		Type:     entryType,
		Page:     firstNumber(pagePattern, metadataLine),
		Location: firstNumber(locationPattern, metadataLine),
		Text:     text,
	}, true
}

func parseTitleAuthor(line string) (title, author string) {
	matches := titleAuthorPattern.FindStringSubmatch(line)
	if len(matches) == 3 {
		return strings.TrimSpace(matches[1]), strings.TrimSpace(matches[2])
	}
	return strings.TrimSpace(line), ""
}

func parseEntryType(line string) EntryType {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "your note"):
		return EntryTypeNote
	case strings.Contains(lower, "your bookmark"):
		return EntryTypeBookmark
	default:
		return EntryTypeHighlight
	}
}

func firstNumber(pattern *regexp.Regexp, line string) int {
	matches := pattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return 0
	}
	n, _ := strconv.Atoi(matches[1])
	return n
}

// groupEntriesIntoBooks folds notes into the highlight at the same position.
// Notes without a matching highlight become note-only highlights.
func groupEntriesIntoBooks(entries []ClippingEntry) []Book {
	bookMap := make(map[string]*Book)
	var bookOrder []string

	bookFor := func(entry ClippingEntry) *Book {
		key := bookKey(entry.Title, entry.Author)
		book, exists := bookMap[key]
		if !exists {
			book = &Book{Title: entry.Title, Authors: entry.Author}
			bookMap[key] = book
			bookOrder = append(bookOrder, key)
		}
		return book
	}

	var notes []ClippingEntry
	for _, entry := range entries {
		if entry.Type == EntryTypeNote {
			notes = append(notes, entry)
			continue
		}
		book := bookFor(entry)
		book.Highlights = append(book.Highlights, Highlight{
			Text:     entry.Text,
			Location: entry.Position(),
		})
	}

	for _, note := range notes {
		book := bookFor(note)
		attached := false
		for i := range book.Highlights {
			h := &book.Highlights[i]
			if h.Text != "" && h.Location == note.Position() {
				if h.Note == "" {
					h.Note = note.Text
				} else {
					h.Note = h.Note + "\n\n" + note.Text
				}
				attached = true
				break
			}
		}
		if !attached {
			book.Highlights = append(book.Highlights, Highlight{
				Note:     note.Text,
				Location: note.Position(),
			})
		}
	}

	books := make([]Book, 0, len(bookOrder))
	for _, key := range bookOrder {
		books = append(books, *bookMap[key])
	}
	return books
}

func bookKey(title, author string) string {
	return strings.ToLower(title) + "|" + strings.ToLower(author)
}
