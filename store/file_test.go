package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_LoadMissingKeepsInitial(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "x.json"), []string{"seed"})
	require.NoError(t, f.Load())
	assert.Equal(t, []string{"seed"}, f.Get())
}

func TestFile_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "x.json")
	f := NewFile[map[string]int](path, map[string]int{"a": 1})
	require.NoError(t, f.Save())

	g := NewFile[map[string]int](path, nil)
	require.NoError(t, g.Load())
	assert.Equal(t, map[string]int{"a": 1}, g.Get())
}

func TestFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f := NewFile(path, 7)
	assert.Error(t, f.Load())
	assert.Equal(t, 7, f.Get())
}

func TestFile_UpdateNotifiesAndRollsBack(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "x.json"), 0)

	var seen []int
	unsubscribe := f.Subscribe(func(v int) { seen = append(seen, v) })

	require.NoError(t, f.Update(func(v int) int { return v + 1 }, (*File[int]).Save))
	assert.Equal(t, 1, f.Get())

	boom := errors.New("disk full")
	err := f.Update(func(v int) int { return v + 1 }, func(*File[int]) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, f.Get(), "rolled back")

	unsubscribe()
	require.NoError(t, f.Update(func(v int) int { return v + 10 }, (*File[int]).Save))

	assert.Equal(t, []int{1}, seen)
}
