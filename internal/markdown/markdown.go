// Package markdown strips formatting from readme bodies so search
// indexing and ranking operate on plain text.
package markdown

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
)

// PlainText extracts readable text from a markdown document. Headings,
// paragraphs and list items survive; code blocks, inline code, images,
// raw HTML and link targets are dropped.
func PlainText(md string) string {
	doc := markdown.Parse([]byte(md), nil)

	var buf bytes.Buffer
	ast.Walk(doc, &textVisitor{buf: &buf})

	text := strings.TrimSpace(buf.String())

	// Collapse runs of blank lines to a single one.
	var cleaned []string
	prevEmpty := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !prevEmpty {
				cleaned = append(cleaned, "")
				prevEmpty = true
			}
			continue
		}
		cleaned = append(cleaned, line)
		prevEmpty = false
	}

	return strings.Join(cleaned, "\n")
}

type textVisitor struct {
	buf          *bytes.Buffer
	inCodeBlock  bool
	skipChildren bool
}

func (v *textVisitor) Visit(node ast.Node, entering bool) ast.WalkStatus {
	if v.skipChildren && entering {
		return ast.SkipChildren
	}
	v.skipChildren = false

	switch n := node.(type) {
	case *ast.Heading:
		v.buf.WriteString("\n")

	case *ast.Paragraph:
		if !entering {
			v.buf.WriteString("\n")
		}

	case *ast.Text:
		if entering && !v.inCodeBlock {
			v.buf.Write(n.Literal)
		}

	case *ast.Softbreak, *ast.Hardbreak:
		if !v.inCodeBlock {
			v.buf.WriteString(" ")
		}

	case *ast.CodeBlock:
		v.inCodeBlock = entering
		if entering {
			v.skipChildren = true
		}
		return ast.SkipChildren

	case *ast.Code:
		if entering {
			v.skipChildren = true
		}
		return ast.SkipChildren

	case *ast.Link:
		// Keep the link text, drop the target.
		if !entering {
			v.buf.WriteString(" ")
		}

	case *ast.Image:
		if entering {
			v.skipChildren = true
		}
		return ast.SkipChildren

	case *ast.List:
		if !entering {
			v.buf.WriteString("\n")
		}

	case *ast.ListItem:
		if entering {
			v.buf.WriteString("\n• ")
		}

	case *ast.Emph, *ast.Strong:
		// Emphasized text passes through without markers.

	case *ast.HTMLBlock, *ast.HTMLSpan:
		if entering {
			v.skipChildren = true
		}
		return ast.SkipChildren
	}

	return ast.GoToNext
}
