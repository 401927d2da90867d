package config

const (
	// DefaultOutlineCommand is pdfminer's dumppdf script, which prints the
	// PDF outline as XML when called with -T
	DefaultOutlineCommand = "dumppdf.py"

	DefaultTitleHeading = "Highlights & notes"

	LangEnglish  = "en"
	LangJapanese = "ja"
)

// ValidLang reports whether lang is a supported text language.
func ValidLang(lang string) bool {
	return lang == LangEnglish || lang == LangJapanese
}
