package imageref

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// imageExtRe matches a recognised image extension at the end of a path,
// optionally followed by a query string.
var imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|webp|svg|ico)(\?.*)?$`)

// hostPatterns is the image-hosting allow-list. A URI matching any of these
// is treated as an image regardless of its path.
var hostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://.*\.(jpg|jpeg|png|gif|bmp|webp|svg|ico)(\?.*)?$`),
	regexp.MustCompile(`(?i)https?://.*\.(imgur|flickr|unsplash|pexels|pixabay)\.com/.*$`),
	regexp.MustCompile(`(?i)https?://.*\.(googleusercontent|amazonaws|cloudinary)\.com/.*$`),
	regexp.MustCompile(`(?i)^ftp://.*\.(jpg|jpeg|png|gif|bmp|webp|svg|ico)$`),
}

// IsImage reports whether uri denotes an image resource.
//
// Classification is fail-closed: anything that cannot be parsed as a URL
// is not an image.
func IsImage(uri string) bool {
	switch {
	case strings.HasPrefix(uri, "data:image/"):
		return true
	case strings.HasPrefix(uri, "blob:"):
		// Blob URIs carry no extension; the caller is trusted.
		return true
	case strings.HasPrefix(uri, "file://"):
		return imageExtRe.MatchString(uri)
	}

	u, ok := parseURL(uri)
	if !ok {
		return false
	}

	if imageExtRe.MatchString(u.Path) {
		return true
	}

	for _, re := range hostPatterns {
		if re.MatchString(uri) {
			return true
		}
	}
	return false
}

// parseURL parses uri as an absolute hierarchical URL. A stray '%' not
// followed by two hex digits is kept as a literal, the way browsers do.
// Opaque forms such as mailto:a.png are rejected.
func parseURL(uri string) (*url.URL, bool) {
	u, err := url.Parse(uri)
	var escErr url.EscapeError
	if errors.As(err, &escErr) {
		u, err = url.Parse(escapeStrayPercent(uri))
	}
	if err != nil || u.Scheme == "" || u.Opaque != "" {
		return nil, false
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err != nil || n > 65535 {
			return nil, false
		}
	}
	return u, true
}

func escapeStrayPercent(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// IsInstantScheme reports whether src is loaded without a network round
// trip (inline data, object URLs and local files).
func IsInstantScheme(src string) bool {
	return strings.HasPrefix(src, "data:") ||
		strings.HasPrefix(src, "blob:") ||
		strings.HasPrefix(src, "file://")
}

// IsEmptySource reports whether src is effectively missing. Serialised
// JavaScript nulls show up as the literal strings "undefined" and "null".
func IsEmptySource(src string) bool {
	s := strings.TrimSpace(src)
	return s == "" || src == "undefined" || src == "null"
}
