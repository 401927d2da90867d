package zotero

// Document is an annotated attachment resolved from the Zotero database.
type Document struct {
	ID   int64  // itemID of the attachment
	Key  string // Zotero item key, also the storage subdirectory name
	Path string // Absolute path to the attachment file
}

// Position is the decoded itemAnnotations.position column.
// Rects hold [x1, y1, x2, y2] in PDF user space, origin at the page bottom.
type Position struct {
	PageIndex int         `json:"pageIndex"`
	Rects     [][]float64 `json:"rects"`
}

type Annotation struct {
	Page     int
	Position Position
	Text     string
	Comment  string
}

// DocumentSummary is one row of the annotated document listing.
type DocumentSummary struct {
	ID              int64
	AnnotationCount int
	Filename        string
}

// Item is a library item with its title.
type Item struct {
	Key   string
	Title string
}
