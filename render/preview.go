package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// previewLines is how many source lines of a paragraph a preview keeps.
const previewLines = 3

// KindEllipsis marks where a preview paragraph was cut.
var KindEllipsis = ast.NewNodeKind("Ellipsis")

// Ellipsis is an inline node appended to truncated paragraphs.
type Ellipsis struct {
	ast.BaseInline
}

// Kind implements ast.Node.
func (n *Ellipsis) Kind() ast.NodeKind {
	return KindEllipsis
}

// Dump implements ast.Node.
func (n *Ellipsis) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// previewTransformer drops level-1 headings (the title is shown
// separately) and cuts paragraphs after previewLines source lines.
type previewTransformer struct{}

func (previewTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var (
		headings   []ast.Node
		paragraphs []*ast.Paragraph
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			if v.Level == 1 {
				headings = append(headings, v)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if v.Lines().Len() > previewLines {
				paragraphs = append(paragraphs, v)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, h := range headings {
		h.Parent().RemoveChild(h.Parent(), h)
	}
	for _, p := range paragraphs {
		truncateParagraph(p)
	}
}

// truncateParagraph removes the inline children that start at or after the
// first dropped line and appends an Ellipsis.
func truncateParagraph(p *ast.Paragraph) {
	cutoff := p.Lines().At(previewLines).Start

	var drop []ast.Node
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		if start, ok := firstTextStart(c); ok && start >= cutoff {
			drop = append(drop, c)
			continue
		}
		if len(drop) > 0 {
			drop = append(drop, c)
		}
	}
	for _, c := range drop {
		p.RemoveChild(p, c)
	}

	if last, ok := p.LastChild().(*ast.Text); ok {
		last.SetSoftLineBreak(false)
		last.SetHardLineBreak(false)
	}
	p.AppendChild(p, &Ellipsis{})
}

// firstTextStart returns the source offset of the first text segment in n.
func firstTextStart(n ast.Node) (int, bool) {
	start, found := 0, false
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			start, found = t.Segment.Start, true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return start, found
}
