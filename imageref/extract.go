package imageref

import "regexp"

// delim is the character class that terminates a URI token.
const delim = `[^\s<>"{}|\\^` + "`" + `\[\]]`

// uriRe tokenises scheme-prefixed URIs out of free text.
var uriRe = regexp.MustCompile(`(?:https?://` + delim + `+` +
	`|data:image/[^;\s]+;base64,` + delim + `+` +
	`|blob:https?://` + delim + `+` +
	`|file://` + delim + `+` +
	`|ftp://` + delim + `+)`)

// Reference is an image URI found in text together with its byte span.
type Reference struct {
	URI   string
	Start int
	End   int
}

// FindReferences returns every image URI in text with its position, in
// textual order. Duplicates are kept.
func FindReferences(text string) []Reference {
	var refs []Reference
	for _, loc := range uriRe.FindAllStringIndex(text, -1) {
		uri := text[loc[0]:loc[1]]
		if !IsImage(uri) {
			continue
		}
		refs = append(refs, Reference{URI: uri, Start: loc[0], End: loc[1]})
	}
	return refs
}

// ExtractImageReferences returns the image URIs in text in their original
// order, duplicates preserved.
func ExtractImageReferences(text string) []string {
	refs := FindReferences(text)
	if len(refs) == 0 {
		return nil
	}
	uris := make([]string, len(refs))
	for i, r := range refs {
		uris[i] = r.URI
	}
	return uris
}
