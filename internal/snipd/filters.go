package snipd

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

func applyFilters(doc ast.Node, src []byte) {
	unwrapBlockquotes(doc)
	removeNoiseBlocks(doc, src)
	normalizeText(doc, src)
	demoteSummaryHeadings(doc, src)
}

// collect gathers matching nodes first; the tree must not change while
// ast.Walk is iterating it.
func collect(doc ast.Node, match func(ast.Node) bool) []ast.Node {
	var nodes []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && match(n) {
			nodes = append(nodes, n)
		}
		return ast.WalkContinue, nil
	})
	return nodes
}

func unwrapBlockquotes(doc ast.Node) {
	quotes := collect(doc, func(n ast.Node) bool { return n.Kind() == ast.KindBlockquote })
	// Innermost first, so nested quotes end up flattened into the outer parent.
	for i := len(quotes) - 1; i >= 0; i-- {
		quote := quotes[i]
		parent := quote.Parent()
		if parent == nil {
			continue
		}
		for child := quote.FirstChild(); child != nil; child = quote.FirstChild() {
			quote.RemoveChild(quote, child)
			parent.InsertBefore(parent, quote, child)
		}
		parent.RemoveChild(parent, quote)
	}
}

// removeNoiseBlocks drops horizontal rules and the boilerplate paragraphs
// Snipd appends to every export.
func removeNoiseBlocks(doc ast.Node, src []byte) {
	noise := collect(doc, func(n ast.Node) bool {
		switch n.Kind() {
		case ast.KindThematicBreak:
			return true
		case ast.KindParagraph:
			return isBoilerplate(visibleText(n, src))
		}
		return false
	})
	for _, n := range noise {
		if parent := n.Parent(); parent != nil {
			parent.RemoveChild(parent, n)
		}
	}
}

func isBoilerplate(s string) bool {
	s = strings.TrimSpace(s)
	return s == "Click to expand" ||
		(strings.Contains(s, "Created with") && strings.Contains(s, "Take Notes from Podcasts"))
}

// normalizeText replaces text nodes with strings that have emoji removed and
// line breaks spelled out as newlines.
func normalizeText(doc ast.Node, src []byte) {
	blocks := collect(doc, func(n ast.Node) bool {
		return n.Type() == ast.TypeBlock && n.FirstChild() != nil && n.FirstChild().Type() == ast.TypeInline
	})
	for _, block := range blocks {
		normalizeInlines(block, src, false)
	}
}

func normalizeInlines(parent ast.Node, src []byte, eatSpace bool) bool {
	for child := parent.FirstChild(); child != nil; {
		next := child.NextSibling()

		switch node := child.(type) {
		case *ast.Text:
			value := string(node.Segment.Value(src))
			if eatSpace {
				value = strings.TrimPrefix(value, " ")
			}
			value, emptied := removeEmojiWords(value)
			if node.SoftLineBreak() || node.HardLineBreak() {
				value += "\n"
				emptied = false
			}
			if value == "" {
				parent.RemoveChild(parent, child)
			} else {
				parent.ReplaceChild(parent, child, ast.NewString([]byte(value)))
			}
			eatSpace = emptied
		case *ast.CodeSpan, *ast.RawHTML, *ast.AutoLink:
			eatSpace = false
		default:
			eatSpace = normalizeInlines(child, src, eatSpace)
		}

		child = next
	}
	return eatSpace
}

// removeEmojiWords drops space-separated words made only of emoji. The second
// result reports that nothing but emoji was there, so the separator space
// starting the next text should go too.
func removeEmojiWords(s string) (string, bool) {
	words := strings.Split(s, " ")
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" && isEmojiOnly(w) {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == len(words) {
		return s, false
	}
	out := strings.Join(kept, " ")
	return out, strings.TrimSpace(out) == ""
}

func isEmojiOnly(s string) bool {
	for _, r := range s {
		if !isEmoji(r) {
			return false
		}
	}
	return true
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F1E0 && r <= 0x1F1FF, // flags
		r >= 0x1F300 && r <= 0x1F5FF, // symbols & pictographs
		r >= 0x1F600 && r <= 0x1F64F, // emoticons
		r >= 0x1F680 && r <= 0x1F6FF, // transport & map
		r >= 0x1F700 && r <= 0x1FAFF, // alchemical through pictographs extended-A
		r >= 0x2600 && r <= 0x27BF,   // misc symbols, dingbats
		r >= 0x1F000 && r <= 0x1F251, // mahjong, cards, enclosed
		r == 0x200D, r == 0xFE0F, r == 0x20E3:
		return true
	}
	return false
}

// demoteSummaryHeadings pushes "Summary" headings one level down, matching
// the layout of newer exports.
func demoteSummaryHeadings(doc ast.Node, src []byte) {
	headings := collect(doc, func(n ast.Node) bool { return n.Kind() == ast.KindHeading })
	for _, n := range headings {
		heading := n.(*ast.Heading)
		words := strings.Fields(visibleText(heading, src))
		if len(words) > 0 && words[0] == "Summary" {
			heading.Level++
		}
	}
}
