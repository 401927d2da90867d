package outline

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DumpPDF runs pdfminer's dumppdf with -T and parses its XML outline.
type DumpPDF struct {
	Command string
}

func NewDumpPDF(command string) *DumpPDF {
	return &DumpPDF{Command: command}
}

func (d *DumpPDF) Extract(ctx context.Context, path string) ([]Entry, error) {
	cmd := exec.CommandContext(ctx, d.Command, "-T", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", d.Command, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", d.Command, err)
	}

	return Parse(out)
}

// xmlNode is a generic element tree; dumppdf output has no fixed schema
// below <outline>.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// descendants collects every element named name below n in document order.
func (n *xmlNode) descendants(name string, acc []*xmlNode) []*xmlNode {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == name {
			acc = append(acc, c)
		}
		acc = c.descendants(name, acc)
	}
	return acc
}

// Parse converts dumppdf -T output into entries. Output that is not XML, or
// a root element without children, means there is no outline.
func Parse(data []byte) ([]Entry, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, nil
	}
	if len(root.Children) == 0 {
		return nil, nil
	}

	var entries []Entry
	for _, el := range root.descendants("outline", nil) {
		entry, err := parseEntry(el)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseEntry(el *xmlNode) (Entry, error) {
	title, ok := el.attr("title")
	if !ok {
		return Entry{}, &MalformedOutlineError{Reason: "'title' not found"}
	}

	levelAttr, ok := el.attr("level")
	if !ok {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: "'level' not found"}
	}
	level, err := strconv.Atoi(strings.TrimSpace(levelAttr))
	if err != nil || level < 0 {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: fmt.Sprintf("invalid level %q", levelAttr)}
	}

	pageEl := el.child("pageno")
	if pageEl == nil {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: "'pageno' not found"}
	}
	page, err := strconv.Atoi(strings.TrimSpace(pageEl.Content))
	if err != nil {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: fmt.Sprintf("invalid page number %q", pageEl.Content)}
	}

	numbers := el.descendants("number", nil)
	if len(numbers) < 2 {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: "position needs two numbers"}
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(numbers[0].Content), 64)
	if err != nil {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: fmt.Sprintf("invalid x position %q", numbers[0].Content)}
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(numbers[1].Content), 64)
	if err != nil {
		return Entry{}, &MalformedOutlineError{Title: title, Reason: fmt.Sprintf("invalid y position %q", numbers[1].Content)}
	}

	return Entry{Title: title, Level: level, Page: page, X: x, Y: y}, nil
}
