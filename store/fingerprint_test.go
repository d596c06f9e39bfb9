package store

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	assert.Zero(t, fingerprint(""))
	assert.Zero(t, fingerprint("## ** --"))
	assert.NotZero(t, fingerprint("hello"))

	// Markdown syntax and case do not change the fingerprint.
	assert.Equal(t, fingerprint("Key findings: growth"), fingerprint("## **key** findings\n- growth"))

	a := fingerprint("the quick brown fox jumps over the lazy dog")
	b := fingerprint("completely unrelated content about quantum physics and mathematics")
	assert.Greater(t, bits.OnesCount64(a^b), duplicateDistance)
}

func TestNearDuplicate(t *testing.T) {
	assert.True(t, nearDuplicate("# Report\n\nRevenue grew 10%.", "Report: revenue grew 10%"))
	assert.False(t, nearDuplicate("", ""))
	assert.False(t, nearDuplicate("attention is all you need", "diffusion models beat GANs on image synthesis"))
}

func TestArchive_FindDuplicate(t *testing.T) {
	a := newTestArchive(t, t.TempDir())
	saved, err := a.Add(NewArchiveItem{Title: "R", Content: "# Report\n\nRevenue grew.", PDFURL: "https://x.com/r.pdf", Language: "KO"})
	require.NoError(t, err)

	dup, ok := a.FindDuplicate(NewArchiveItem{Content: "# REPORT\nrevenue grew", PDFURL: "https://x.com/r.pdf", Language: "KO"})
	require.True(t, ok)
	assert.Equal(t, saved.ID, dup.ID)

	_, ok = a.FindDuplicate(NewArchiveItem{Content: "# Report\n\nRevenue grew.", PDFURL: "https://x.com/r.pdf", Language: "EN"})
	assert.False(t, ok)

	_, ok = a.FindDuplicate(NewArchiveItem{Content: "# Report\n\nRevenue grew.", Language: "KO"})
	assert.False(t, ok)
}
