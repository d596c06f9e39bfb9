package store

import (
	"hash/fnv"
	"math/bits"
	"strings"
	"unicode"
)

// duplicateDistance is the largest Hamming distance between two content
// fingerprints that still counts as the same summary.
const duplicateDistance = 3

// fingerprint computes a 64-bit SimHash over the lower-cased words of a
// markdown document. Markdown punctuation is ignored, so re-rendered or
// lightly edited copies of one summary land a few bits apart.
func fingerprint(text string) uint64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return 0
	}

	var vector [64]int
	for _, w := range words {
		h := fnv.New64a()
		h.Write([]byte(w))
		sum := h.Sum64()
		for i := range vector {
			if sum&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i, v := range vector {
		if v > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// nearDuplicate reports whether two documents' fingerprints are within
// duplicateDistance bits. Empty documents never match.
func nearDuplicate(a, b string) bool {
	fa, fb := fingerprint(a), fingerprint(b)
	if fa == 0 || fb == 0 {
		return false
	}
	return bits.OnesCount64(fa^fb) <= duplicateDistance
}
