package session

import (
	"testing"
	"time"

	"github.com/pdfgenie/genie/cache"
	"github.com/pdfgenie/genie/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	c := cache.New[*Session](10, time.Hour)
	t.Cleanup(c.Close)
	return NewManager(c)
}

func TestManager_FollowUpsNewestFirst(t *testing.T) {
	m := newManager(t)
	m.Start("fid", "https://x.com/a.pdf", models.LangKO, false, "summary")

	_, ok := m.AddFollowUp("fid", "first?", "one")
	require.True(t, ok)
	s, ok := m.AddFollowUp("fid", "second?", "two")
	require.True(t, ok)

	assert.Equal(t, []string{"Q: second?\nA: two", "Q: first?\nA: one"}, s.FollowUps)
}

func TestManager_StartResetsLog(t *testing.T) {
	m := newManager(t)
	m.Start("fid", "u", models.LangKO, false, "v1")
	m.AddFollowUp("fid", "q", "a")

	m.Start("fid", "u", models.LangEN, true, "v2")

	s, ok := m.Get("fid")
	require.True(t, ok)
	assert.Empty(t, s.FollowUps)
	assert.Equal(t, "v2", s.Summary)
	assert.Equal(t, models.LangEN, s.Lang)
	assert.True(t, s.DeepResearch)
}

func TestManager_Unknown(t *testing.T) {
	m := newManager(t)
	_, ok := m.Get("nope")
	assert.False(t, ok)
	_, ok = m.AddFollowUp("nope", "q", "a")
	assert.False(t, ok)
}

func TestManager_ReturnsCopies(t *testing.T) {
	m := newManager(t)
	m.Start("fid", "u", models.LangKO, false, "s")
	s, _ := m.AddFollowUp("fid", "q", "a")

	s.FollowUps[0] = "mutated"

	again, _ := m.Get("fid")
	assert.Equal(t, "Q: q\nA: a", again.FollowUps[0])
}
