package snipd

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/mrlokans/orgutils/internal/org"
)

func renderOrg(doc ast.Node, src []byte) string {
	var nodes []org.Node
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		nodes = append(nodes, orgBlocks(n, src)...)
	}
	return org.Dumps(nodes)
}

func orgBlocks(n ast.Node, src []byte) []org.Node {
	switch node := n.(type) {
	case *ast.Heading:
		return []org.Node{org.Heading{
			Title: strings.TrimSpace(orgInline(node, src)),
			Level: node.Level,
		}}
	case *ast.Paragraph, *ast.TextBlock:
		content := strings.TrimSpace(orgInline(node, src))
		if content == "" {
			return nil
		}
		return []org.Node{org.Paragraph{Content: content}}
	case *ast.List:
		return []org.Node{org.Paragraph{Content: strings.Join(orgList(node, src, ""), "\n")}}
	case *ast.FencedCodeBlock:
		lang := string(node.Language(src))
		return []org.Node{org.Paragraph{Content: srcBlock(lang, node, src)}}
	case *ast.CodeBlock:
		return []org.Node{org.Paragraph{Content: srcBlock("", node, src)}}
	case *extast.Table:
		return []org.Node{org.Paragraph{Content: strings.Join(orgTable(node, src), "\n")}}
	case *ast.HTMLBlock:
		return nil
	}

	var nodes []org.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		nodes = append(nodes, orgBlocks(c, src)...)
	}
	return nodes
}

func orgList(list *ast.List, src []byte, indent string) []string {
	var lines []string
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		bullet := "- "
		if list.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", number)
			number++
		}
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				lines = append(lines, orgList(sub, src, indent+"  ")...)
				continue
			}
			text := strings.TrimSpace(orgInline(c, src))
			prefix := indent + strings.Repeat(" ", len(bullet))
			if first {
				prefix = indent + bullet
				first = false
			}
			lines = append(lines, prefix+strings.ReplaceAll(text, "\n", "\n"+indent+"  "))
		}
		if first {
			lines = append(lines, indent+strings.TrimSpace(bullet))
		}
	}
	return lines
}

func orgTable(table *extast.Table, src []byte) []string {
	var lines []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(orgInline(cell, src)))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if row.Kind() == extast.KindTableHeader {
			seps := make([]string, len(cells))
			for i, c := range cells {
				seps[i] = strings.Repeat("-", len(c)+2)
			}
			lines = append(lines, "|"+strings.Join(seps, "+")+"|")
		}
	}
	return lines
}

func srcBlock(lang string, n ast.Node, src []byte) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace("#+BEGIN_SRC " + lang))
	sb.WriteByte('\n')
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(src))
	}
	sb.WriteString("#+END_SRC")
	return sb.String()
}

func orgInline(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.String:
			sb.Write(node.Value)
		case *ast.Text:
			sb.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.Emphasis:
			marker := "/"
			if node.Level >= 2 {
				marker = "*"
			}
			sb.WriteString(marker + orgInline(node, src) + marker)
		case *extast.Strikethrough:
			sb.WriteString("+" + orgInline(node, src) + "+")
		case *ast.CodeSpan:
			sb.WriteString("=" + visibleText(node, src) + "=")
		case *ast.Link:
			sb.WriteString(orgLink(string(node.Destination), orgInline(node, src)))
		case *ast.AutoLink:
			sb.WriteString(orgLink(string(node.URL(src)), ""))
		case *ast.Image:
			sb.WriteString(orgLink(string(node.Destination), ""))
		case *ast.RawHTML:
		default:
			sb.WriteString(orgInline(node, src))
		}
	}
	return sb.String()
}

func orgLink(dest, label string) string {
	if label == "" || label == dest {
		return "[[" + dest + "]]"
	}
	return "[[" + dest + "][" + label + "]]"
}
