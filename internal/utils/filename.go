package utils

import (
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceChars      = regexp.MustCompile(`[\r\n\t]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

const maxFilenameLength = 200

// SanitizeFilename turns a book or document title into a name safe to use on
// most filesystems. Org link syntax characters are replaced as well, so the
// file can be linked from another Org document without escaping.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	if len(filename) > maxFilenameLength {
		filename = strings.TrimSpace(truncateRunes(filename, maxFilenameLength))
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// OrgFilename returns the sanitized title with an .org extension.
func OrgFilename(title string) string {
	return SanitizeFilename(title) + ".org"
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
