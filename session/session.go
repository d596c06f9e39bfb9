package session

import (
	"sync"
	"time"

	"github.com/pdfgenie/genie/cache"
	"github.com/pdfgenie/genie/models"
)

// Session is the conversation state for one document.
type Session struct {
	FileID       string
	PDFURL       string
	Lang         models.Lang
	DeepResearch bool
	Summary      string

	// FollowUps holds "Q: ...\nA: ..." entries, newest first.
	FollowUps []string

	UpdatedAt time.Time
}

// Manager keeps sessions keyed by file ID. Sessions expire with the
// underlying cache's TTL.
type Manager struct {
	mu    sync.Mutex
	cache *cache.Cache[*Session]
}

// NewManager wraps c.
func NewManager(c *cache.Cache[*Session]) *Manager {
	return &Manager{cache: c}
}

// Start records a fresh summary for a document, discarding any previous
// follow-up log.
func (m *Manager) Start(fileID, pdfURL string, lang models.Lang, deep bool, summary string) *Session {
	s := &Session{
		FileID:       fileID,
		PDFURL:       pdfURL,
		Lang:         lang,
		DeepResearch: deep,
		Summary:      summary,
		UpdatedAt:    time.Now(),
	}

	m.mu.Lock()
	m.cache.Set(fileID, s)
	m.mu.Unlock()

	return s.clone()
}

// Get returns a copy of the session for fileID.
func (m *Manager) Get(fileID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.cache.Get(fileID)
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// AddFollowUp prepends a question and answer to the session log and
// returns the updated copy.
func (m *Manager) AddFollowUp(fileID, question, answer string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.cache.Get(fileID)
	if !ok {
		return nil, false
	}

	next := s.clone()
	next.FollowUps = append([]string{FormatFollowUp(question, answer)}, next.FollowUps...)
	next.UpdatedAt = time.Now()
	m.cache.Set(fileID, next)

	return next.clone(), true
}

// FormatFollowUp renders one log entry.
func FormatFollowUp(question, answer string) string {
	return "Q: " + question + "\nA: " + answer
}

func (s *Session) clone() *Session {
	c := *s
	c.FollowUps = append([]string(nil), s.FollowUps...)
	return &c
}
