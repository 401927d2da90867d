package utils

import (
	"strings"
	"unicode"
)

// isZenkaku reports whether r falls outside printable ASCII.
func isZenkaku(r rune) bool {
	return r < 0x01 || r > 0x7E
}

func isInlineSpace(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

// RemoveWhitespacesBetweenZenkaku drops runs of inline whitespace that sit
// between two full-width (non-ASCII) characters. Japanese text extracted from
// PDFs and Kindle often carries spaces the source never had.
func RemoveWhitespacesBetweenZenkaku(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		if !isInlineSpace(r) {
			b.WriteRune(r)
			i++
			continue
		}

		j := i
		for j < len(runes) && isInlineSpace(runes[j]) {
			j++
		}
		if i > 0 && j < len(runes) && isZenkaku(runes[i-1]) && isZenkaku(runes[j]) {
			i = j
			continue
		}
		b.WriteString(string(runes[i:j]))
		i = j
	}

	return b.String()
}
