package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

func toHTML(t *testing.T, r *Renderer, md string, preview bool) string {
	t.Helper()
	out, err := r.ToHTML(context.Background(), md, preview)
	require.NoError(t, err)
	return out
}

func TestToHTML_RemoteImage(t *testing.T) {
	out := toHTML(t, New(nil), "![a cat](https://example.com/cat.png)", false)

	assert.Contains(t, out, `<span class="genie-image" data-lightbox="true">`)
	assert.Contains(t, out, `<img src="https://example.com/cat.png" alt="a cat" loading="lazy">`)
	assert.Contains(t, out, `target="_blank" rel="noopener noreferrer">원본 링크 열기</a>`)
}

func TestToHTML_InstantImages(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"data", "data:image/png;base64,AAAA"},
		{"blob", "blob:https://example.com/0b1c"},
		{"file", "file:///tmp/cat.png"},
	}
	r := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := toHTML(t, r, "![x]("+tt.src+")", false)
			assert.Contains(t, out, `loading="eager"`)
			assert.NotContains(t, out, "원본 링크 열기")
		})
	}
}

func TestToHTML_EmptyImageSource(t *testing.T) {
	r := New(nil)
	for _, src := range []string{"undefined", "null", "<>"} {
		out := toHTML(t, r, "![x]("+src+")", false)
		assert.Contains(t, out, "이미지 URL이 없습니다", src)
		assert.NotContains(t, out, "<img", src)
	}
}

func TestToHTML_DangerousImageSource(t *testing.T) {
	out := toHTML(t, New(nil), "![x](javascript:alert(1))", false)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "genie-image-empty")
}

func TestToHTML_DefaultAlt(t *testing.T) {
	out := toHTML(t, New(nil), "![](https://example.com/cat.png)", false)
	assert.Contains(t, out, `alt="이미지"`)
}

func TestToHTML_Links(t *testing.T) {
	r := New(nil)

	out := toHTML(t, r, "[docs](https://example.com/docs)", false)
	assert.Equal(t, `<p><a href="https://example.com/docs" target="_blank" rel="noopener noreferrer">docs</a></p>`+"\n", out)

	out = toHTML(t, r, "[top](#top)", false)
	assert.Equal(t, `<p><a href="#top">top</a></p>`+"\n", out)
}

func TestToHTML_GFMTable(t *testing.T) {
	out := toHTML(t, New(nil), "| a | b |\n|---|---|\n| 1 | 2 |\n", false)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestToHTML_PreviewDropsTitle(t *testing.T) {
	md := "# Report\n\n## Findings\n\nshort paragraph\n"

	full := toHTML(t, New(nil), md, false)
	assert.Contains(t, full, "<h1>Report</h1>")

	preview := toHTML(t, New(nil), md, true)
	assert.NotContains(t, preview, "<h1>")
	assert.Contains(t, preview, "<h2>Findings</h2>")
	assert.Contains(t, preview, "<p>short paragraph</p>")
	assert.NotContains(t, preview, "genie-ellipsis")
}

func TestToHTML_PreviewTruncatesLongParagraphs(t *testing.T) {
	md := "one\ntwo\nthree\nfour\nfive\n"

	preview := toHTML(t, New(nil), md, true)
	assert.Contains(t, preview, "one\ntwo\nthree")
	assert.NotContains(t, preview, "four")
	assert.NotContains(t, preview, "five")
	assert.Contains(t, preview, `<span class="genie-ellipsis">...</span>`)

	full := toHTML(t, New(nil), md, false)
	assert.Contains(t, full, "five")
	assert.NotContains(t, full, "genie-ellipsis")
}

func TestToHTML_PreviewKeepsThreeLineParagraph(t *testing.T) {
	preview := toHTML(t, New(nil), "one\ntwo\nthree\n", true)
	assert.Equal(t, "<p>one\ntwo\nthree</p>\n", preview)
}

func TestToHTML_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).ToHTML(ctx, "text", false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_CustomStrategy(t *testing.T) {
	strategies := Strategies{
		ast.KindImage: func(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
			if entering {
				_, _ = w.WriteString("[image]")
			}
			return ast.WalkSkipChildren, nil
		},
	}
	out := toHTML(t, New(strategies), "see ![x](https://example.com/a.png)\n\n[link](https://example.com)", false)

	assert.Contains(t, out, "see [image]")
	// Kinds without a strategy use goldmark's stock renderer.
	assert.Contains(t, out, `<a href="https://example.com">link</a>`)
	assert.False(t, strings.Contains(out, "target="))
}
