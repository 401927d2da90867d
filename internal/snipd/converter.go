// Package snipd converts Snipd podcast exports (GitHub-flavoured markdown)
// into Org or cleaned-up HTML.
package snipd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	FormatOrg  = "org"
	FormatHTML = "html"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

var (
	showNotesPattern = regexp.MustCompile(`(?s)<details>\n<summary>Show notes</summary>\n(.+?)\n</details>`)
	quoteMarkPattern = regexp.MustCompile(`>\s+`)
	timestampPattern = regexp.MustCompile(`(?m)^([0-9]{2}:[0-9]{2}(:[0-9]{2})? .+)`)
)

// Converter parses Snipd markdown with goldmark and strips export noise
// before rendering.
type Converter struct {
	md goldmark.Markdown
}

func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Convert renders markup in the given format ("org" or "html").
func (c *Converter) Convert(markup, format string) (string, error) {
	if format != FormatOrg && format != FormatHTML {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	src := []byte(preprocess(markup))
	doc := c.md.Parser().Parse(text.NewReader(src))
	applyFilters(doc, src)

	if format == FormatHTML {
		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
			return "", fmt.Errorf("failed to render html: %w", err)
		}
		return buf.String(), nil
	}

	return renderOrg(doc, src), nil
}

// preprocess turns the collapsed "Show notes" HTML block into a markdown
// section so its timestamps come out as a list.
func preprocess(md string) string {
	loc := showNotesPattern.FindStringSubmatchIndex(md)
	if loc == nil {
		return md
	}

	notes := md[loc[2]:loc[3]]
	notes = strings.ReplaceAll(notes, "<br/>", "\n\n")
	notes = quoteMarkPattern.ReplaceAllString(notes, "")
	notes = timestampPattern.ReplaceAllString(notes, "- $1")

	return md[:loc[0]] + "\n## Show notes\n\n" + notes + "\n" + md[loc[1]:]
}

// visibleText is the plain text of a node as a reader would see it.
func visibleText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.AutoLink:
			sb.Write(node.Label(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
