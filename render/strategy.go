package render

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/pdfgenie/genie/imageref"
)

// Strategy renders one node kind. It has goldmark's node renderer
// signature so the stock HTML renderer can be replaced kind by kind.
type Strategy = renderer.NodeRendererFunc

// Strategies maps node kinds to the strategy that renders them. Kinds that
// are absent fall through to goldmark's HTML renderer.
type Strategies map[ast.NodeKind]Strategy

// DefaultStrategies returns the overrides used by the gateway: images go
// through the preview component markup, links open in a new tab and
// truncation markers render as a muted ellipsis.
func DefaultStrategies() Strategies {
	return Strategies{
		ast.KindImage: renderImage,
		ast.KindLink:  renderLink,
		KindEllipsis:  renderEllipsis,
	}
}

// overrides adapts Strategies to goldmark's renderer.NodeRenderer.
type overrides struct {
	strategies Strategies
}

func (o *overrides) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for kind, fn := range o.strategies {
		reg.Register(kind, fn)
	}
}

const (
	emptyImageText   = "이미지 URL이 없습니다"
	openOriginalText = "원본 링크 열기"
)

// renderImage writes the markup the front-end's image preview hydrates:
// a lightbox-enabled wrapper, eager loading for sources that need no
// network, and an "open original" link for remote images.
func renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	src := string(n.Destination)

	alt := altText(n, source)
	if alt == "" {
		alt = imageref.DefaultAlt
	}

	if imageref.IsEmptySource(src) || !safeImageSource(n.Destination) {
		_, _ = w.WriteString(`<span class="genie-image genie-image-empty">`)
		_, _ = w.WriteString(emptyImageText)
		_, _ = w.WriteString(`</span>`)
		return ast.WalkSkipChildren, nil
	}

	instant := imageref.IsInstantScheme(src)
	escaped := util.EscapeHTML(util.URLEscape(n.Destination, true))

	_, _ = w.WriteString(`<span class="genie-image" data-lightbox="true">`)
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(escaped)
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_, _ = w.WriteString(`"`)
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_, _ = w.WriteString(`"`)
	}
	if instant {
		_, _ = w.WriteString(` loading="eager"`)
	} else {
		_, _ = w.WriteString(` loading="lazy"`)
	}
	_, _ = w.WriteString(`>`)

	if !instant {
		_, _ = w.WriteString(`<a class="genie-image-original" href="`)
		_, _ = w.Write(escaped)
		_, _ = w.WriteString(`" target="_blank" rel="noopener noreferrer">`)
		_, _ = w.WriteString(openOriginalText)
		_, _ = w.WriteString(`</a>`)
	}
	_, _ = w.WriteString(`</span>`)
	return ast.WalkSkipChildren, nil
}

func renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	if !bytes.HasPrefix(n.Destination, []byte("#")) {
		_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func renderEllipsis(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<span class="genie-ellipsis">...</span>`)
	}
	return ast.WalkSkipChildren, nil
}

// safeImageSource allows local files on top of what goldmark considers
// safe; an <img> cannot execute a file: URL.
func safeImageSource(dest []byte) bool {
	if len(dest) >= 7 && bytes.EqualFold(dest[:7], []byte("file://")) {
		return true
	}
	return !html.IsDangerousURL(dest)
}

// altText concatenates the text content of an image's children.
func altText(n ast.Node, source []byte) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c == n {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
