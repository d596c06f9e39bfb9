package imageref

import (
	"regexp"
	"strings"
)

// DefaultAlt is the alt text used when no caption is available.
const DefaultAlt = "이미지"

// markdownImageRe matches a well-formed inline markdown image.
var markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)

// HasMarkdownImage reports whether text already contains ![alt](url).
func HasMarkdownImage(text string) bool {
	return markdownImageRe.MatchString(text)
}

// MarkdownImage formats an inline markdown image tag.
func MarkdownImage(alt, uri string) string {
	return "![" + alt + "](" + uri + ")"
}

// RewriteURIsAsMarkdownImages wraps every bare image URI in text with
// markdown image syntax.
//
// Text that already carries a markdown image is returned untouched: wrapping
// an existing tag again breaks its src. This also makes the rewrite
// idempotent.
func RewriteURIsAsMarkdownImages(text string) string {
	if HasMarkdownImage(text) {
		return text
	}

	refs := FindReferences(text)
	if len(refs) == 0 {
		return text
	}

	// Splice by span so repeated URIs each get their own tag and a URI never
	// matches inside a tag produced for an earlier one.
	var b strings.Builder
	b.Grow(len(text) + len(refs)*(len(DefaultAlt)+5))
	last := 0
	for _, r := range refs {
		b.WriteString(text[last:r.Start])
		b.WriteString(MarkdownImage(DefaultAlt, r.URI))
		last = r.End
	}
	b.WriteString(text[last:])
	return b.String()
}
