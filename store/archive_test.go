package store

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T, dir string) *Archive {
	t.Helper()
	a := NewArchive(dir)
	a.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, a.Load())
	return a
}

func TestArchive_AddNewestFirst(t *testing.T) {
	a := newTestArchive(t, t.TempDir())

	first, err := a.Add(NewArchiveItem{Title: "One", Content: "alpha", Language: "KO"})
	require.NoError(t, err)
	second, err := a.Add(NewArchiveItem{Title: "Two", Content: "beta", Language: "EN", IsDeepResearch: true})
	require.NoError(t, err)

	items := a.List("", "all")
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, "2026-03-09", first.CreatedAt)
	assert.Regexp(t, regexp.MustCompile(`^archive_\d+_[0-9a-z]{9}$`), first.ID)
}

func TestArchive_List(t *testing.T) {
	a := newTestArchive(t, t.TempDir())
	_, _ = a.Add(NewArchiveItem{Title: "Transformer paper", Content: "attention", Language: "EN"})
	_, _ = a.Add(NewArchiveItem{Title: "요약", Content: "Diffusion MODELS", Language: "KO"})

	assert.Len(t, a.List("", ""), 2)
	assert.Len(t, a.List("models", "all"), 1, "content match is case-insensitive")
	assert.Len(t, a.List("TRANSFORMER", "all"), 1, "title match is case-insensitive")
	assert.Len(t, a.List("transformer", "KO"), 0)
	assert.Len(t, a.List("", "KO"), 1)
	assert.NotNil(t, a.List("nothing", "all"))
}

func TestArchive_RemoveAndGet(t *testing.T) {
	a := newTestArchive(t, t.TempDir())
	item, err := a.Add(NewArchiveItem{Title: "T", Content: "c", Language: "KO"})
	require.NoError(t, err)

	got, ok := a.Get(item.ID)
	require.True(t, ok)
	assert.Equal(t, item, got)

	require.NoError(t, a.Remove(item.ID))
	_, ok = a.Get(item.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, a.Remove(item.ID), ErrNotFound)
}

func TestArchive_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	a := newTestArchive(t, dir)
	item, err := a.Add(NewArchiveItem{Title: "Saved", Content: "c", Language: "EN"})
	require.NoError(t, err)

	b := newTestArchive(t, dir)
	got, ok := b.Get(item.ID)
	require.True(t, ok)
	assert.Equal(t, "Saved", got.Title)
}

func TestArchive_Subscribe(t *testing.T) {
	a := newTestArchive(t, t.TempDir())

	var counts []int
	a.Subscribe(func(items []ArchiveItem) { counts = append(counts, len(items)) })

	item, _ := a.Add(NewArchiveItem{Title: "A", Content: "c", Language: "KO"})
	_, _ = a.Add(NewArchiveItem{Title: "B", Content: "c", Language: "KO"})
	_ = a.Remove(item.ID)

	assert.Equal(t, []int{1, 2, 1}, counts)
}
