package imageref

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// DevAPIURL is the API base used when serving the local development host.
const DevAPIURL = "http://localhost:8000"

// placeholderRe matches [IMG_<n>_<m>] and [IMG_<n>_<m>:<caption>].
var placeholderRe = regexp.MustCompile(`\[(IMG_\d+_\d+)(?::([^\]]*))?\]`)

// RewritePlaceholderImages replaces every tutorial-image placeholder in text
// with a markdown image pointing at <base>/api/tutorial/<fileID>/image/<id>.
//
// Without a file ID the placeholders cannot be resolved and text is returned
// unchanged. Placeholders with non-numeric IDs never match.
func RewritePlaceholderImages(text, fileID, base string) string {
	if fileID == "" || !strings.Contains(text, "[IMG_") {
		return text
	}

	prefix := strings.TrimRight(base, "/") + "/api/tutorial/" + url.PathEscape(fileID) + "/image/"

	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		m := placeholderRe.FindStringSubmatch(match)
		alt := strings.TrimSpace(m[2])
		if alt == "" {
			alt = DefaultAlt
		}
		return MarkdownImage(alt, prefix+m[1])
	})
}

// Prepare runs the placeholder rewriter and then the URI rewriter, producing
// markdown ready for rendering.
func Prepare(text, fileID, base string) string {
	return RewriteURIsAsMarkdownImages(RewritePlaceholderImages(text, fileID, base))
}

// BaseResolver picks the API base URL for placeholder images.
type BaseResolver struct {
	// Override, when set, always wins.
	Override string

	// DevHosts are host names treated as the local development host.
	DevHosts []string

	// DevURL is returned for requests from a development host.
	DevURL string
}

// NewBaseResolver returns a resolver with the stock development defaults.
func NewBaseResolver(override string) *BaseResolver {
	return &BaseResolver{
		Override: override,
		DevHosts: []string{"localhost", "127.0.0.1"},
		DevURL:   DevAPIURL,
	}
}

// Resolve returns the base URL for a request addressed to host (which may
// carry a port). An empty result means a relative path, left to the hosting
// environment's routing.
func (r *BaseResolver) Resolve(host string) string {
	if r.Override != "" {
		return r.Override
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for _, dev := range r.DevHosts {
		if strings.EqualFold(host, dev) {
			return r.DevURL
		}
	}
	return ""
}
