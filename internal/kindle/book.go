package kindle

// Book is a set of Kindle highlights for one title, from either a
// Bookcision JSON export or a "My Clippings.txt" file.
type Book struct {
	Title      string
	Authors    string
	ASIN       string
	Highlights []Highlight
}

// Highlight is a highlighted passage and/or a note at a Kindle location.
// Notes double as markup: "h2 Chapter" turns the entry into a heading and
// "vocab term" files it under the vocabulary list.
type Highlight struct {
	Text     string
	Note     string
	Location int
}
