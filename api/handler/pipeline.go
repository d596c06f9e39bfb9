package handler

import (
	"context"

	"github.com/pdfgenie/genie/imageref"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/render"
)

// Pipeline turns raw summarizer output into display-ready markdown and
// HTML: normalize, rewrite image references, render.
type Pipeline struct {
	Renderer *render.Renderer
	Resolver *imageref.BaseResolver
}

// Rendered is the output of Pipeline.Run.
type Rendered struct {
	Title    string
	Markdown string
	HTML     string
	Images   []models.Image
}

// Run prepares content for the client at host. fileID resolves image
// placeholders and may be empty.
func (p *Pipeline) Run(ctx context.Context, host, content, fileID string, preview bool) (Rendered, error) {
	md := p.Renderer.Normalize(content)
	md = imageref.Prepare(md, fileID, p.Resolver.Resolve(host))

	html, err := p.Renderer.ToHTML(ctx, md, preview)
	if err != nil {
		return Rendered{}, models.NewGenieError(models.ErrCodeInternal, "failed to render markdown", err)
	}

	return Rendered{
		Title:    render.Title(md),
		Markdown: md,
		HTML:     html,
		Images:   render.Images(html),
	}, nil
}
