// Package render turns prepared summary markdown into the HTML fragment the
// front-end displays.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// ErrConversion wraps goldmark failures.
var ErrConversion = errors.New("markdown conversion failed")

// overridePriority sorts ahead of goldmark's HTML renderer (1000) so the
// strategies replace its functions for the same kinds.
const overridePriority = 100

// previewPriority runs after goldmark's own AST transformers.
const previewPriority = 900

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	full    goldmark.Markdown
	preview goldmark.Markdown
	conv    *converter.Converter
}

// New returns a Renderer using the given strategies, or DefaultStrategies
// when strategies is nil.
func New(strategies Strategies) *Renderer {
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	registered := Strategies{KindEllipsis: renderEllipsis}
	for kind, fn := range strategies {
		registered[kind] = fn
	}
	nodes := renderer.WithNodeRenderers(
		util.Prioritized(&overrides{strategies: registered}, overridePriority),
	)

	full := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(nodes),
	)
	preview := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(previewTransformer{}, previewPriority)),
		),
		goldmark.WithRendererOptions(nodes),
	)

	return &Renderer{
		full:    full,
		preview: preview,
		conv:    newMarkdownConverter(),
	}
}

// ToHTML renders markdown. When preview is set, level-1 headings are
// dropped and long paragraphs are cut.
func (r *Renderer) ToHTML(ctx context.Context, markdown string, preview bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := r.full
	if preview {
		md = r.preview
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
