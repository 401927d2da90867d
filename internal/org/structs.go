// Package org renders Org-mode outline markup.
//
// A document is a flat sequence of nodes. Each node knows how to turn itself
// into lines of text; Dumps joins them with a blank line after every node.
package org

import (
	"fmt"
	"io"
	"strings"
)

const (
	headingMarker  = "*"
	propertiesOpen = ":PROPERTIES:"
	propertiesEnd  = ":END:"
	quoteBegin     = "#+BEGIN_QUOTE"
	quoteEnd       = "#+END_QUOTE"
)

// Node is a self-rendering unit of Org markup.
type Node interface {
	Render() []string
}

// Property is a single entry of a heading's property drawer.
type Property struct {
	Key   string
	Value any
}

// Properties keeps drawer entries in insertion order.
type Properties []Property

// Props builds Properties from alternating key/value arguments.
func Props(kv ...any) Properties {
	props := make(Properties, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		props = append(props, Property{Key: fmt.Sprint(kv[i]), Value: kv[i+1]})
	}
	return props
}

type Heading struct {
	Title      string
	Level      int
	Properties Properties
}

func (h Heading) Render() []string {
	level := h.Level
	if level < 0 {
		level = 0
	}
	lines := []string{strings.Repeat(headingMarker, level) + " " + h.Title}
	if len(h.Properties) > 0 {
		lines = append(lines, propertiesOpen)
		for _, p := range h.Properties {
			lines = append(lines, fmt.Sprintf(":%s: %v", strings.ToUpper(p.Key), p.Value))
		}
		lines = append(lines, propertiesEnd)
	}
	return lines
}

type Paragraph struct {
	Content string
}

func (p Paragraph) Render() []string {
	return []string{p.Content}
}

type QuoteBlock struct {
	Content string
}

func (q QuoteBlock) Render() []string {
	return []string{quoteBegin, q.Content, quoteEnd}
}

// Group renders its children back to back, without separators between them.
type Group struct {
	Nodes []Node
}

func (g Group) Render() []string {
	var lines []string
	for _, n := range g.Nodes {
		lines = append(lines, n.Render()...)
	}
	return lines
}

// Dumps renders nodes in order, each followed by one blank line.
func Dumps(nodes []Node) string {
	var lines []string
	for _, n := range nodes {
		lines = append(lines, n.Render()...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Write renders nodes to w followed by a trailing newline.
func Write(w io.Writer, nodes []Node) error {
	_, err := fmt.Fprintln(w, Dumps(nodes))
	return err
}
