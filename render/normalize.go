package render

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// blockTagRe spots answers that came back as an HTML document or fragment
// instead of markdown.
var blockTagRe = regexp.MustCompile(`(?i)<(html|body|div|p|h[1-6]|ul|ol|table|pre|article|section)[\s>]`)

// newMarkdownConverter keeps tables compact; summaries are read in a
// narrow side panel.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// LooksLikeHTML reports whether s contains block-level HTML markup.
func LooksLikeHTML(s string) bool {
	return blockTagRe.MatchString(s)
}

// Normalize converts an HTML answer to markdown. Markdown answers, and
// answers the converter rejects, are returned trimmed but otherwise as is.
func (r *Renderer) Normalize(answer string) string {
	answer = strings.TrimSpace(answer)
	if !LooksLikeHTML(answer) {
		return answer
	}
	md, err := r.conv.ConvertString(answer)
	if err != nil {
		return answer
	}
	return strings.TrimSpace(md)
}
