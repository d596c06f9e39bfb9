package summary

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var nonWordRe = regexp.MustCompile(`\W`)

// FileID derives the stable document identifier for a PDF URL:
// fid_<hash>_<basename>.
//
// The hash is a 31-multiplier rolling hash over the UTF-16 code units of
// the trimmed, lower-cased URL, so IDs match the ones browsers generate for
// the same document. Non-word characters in the basename become one '_' per
// UTF-16 code unit for the same reason.
func FileID(pdfURL string) string {
	norm := strings.ToLower(strings.TrimSpace(pdfURL))

	base := norm
	if i := strings.LastIndex(norm, "/"); i >= 0 {
		base = norm[i+1:]
	}
	base = nonWordRe.ReplaceAllStringFunc(base, func(m string) string {
		r, _ := utf8.DecodeRuneInString(m)
		return strings.Repeat("_", utf16.RuneLen(r))
	})
	if base == "" {
		base = "file"
	}

	return "fid_" + strconv.FormatUint(uint64(hash32(norm)), 16) + "_" + base
}

func hash32(s string) uint32 {
	var h uint32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(c)
	}
	return h
}
