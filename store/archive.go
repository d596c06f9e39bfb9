package store

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when an archive item does not exist.
var ErrNotFound = errors.New("store: not found")

// ArchiveItem is a saved summary.
type ArchiveItem struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	PDFURL         string `json:"pdf_url,omitempty"`
	CreatedAt      string `json:"created_at"` // YYYY-MM-DD
	Language       string `json:"language"`
	IsDeepResearch bool   `json:"is_deep_research"`
}

// NewArchiveItem is the caller-supplied part of an ArchiveItem.
type NewArchiveItem struct {
	Title          string
	Content        string
	PDFURL         string
	Language       string
	IsDeepResearch bool
}

// Archive is the list of saved summaries, newest first.
type Archive struct {
	file *File[[]ArchiveItem]
	now  func() time.Time
}

// NewArchive creates an archive persisted as archive.json under dir.
func NewArchive(dir string) *Archive {
	return &Archive{
		file: NewFile[[]ArchiveItem](filepath.Join(dir, "archive.json"), nil),
		now:  time.Now,
	}
}

// Load reads the archive from disk.
func (a *Archive) Load() error {
	return a.file.Load()
}

// Save writes the archive to disk.
func (a *Archive) Save() error {
	return a.file.Save()
}

// Subscribe registers fn to be called with the full list after each change.
func (a *Archive) Subscribe(fn func([]ArchiveItem)) (unsubscribe func()) {
	return a.file.Subscribe(fn)
}

// Add stores a new item at the front of the archive and returns it.
func (a *Archive) Add(in NewArchiveItem) (ArchiveItem, error) {
	now := a.now()
	item := ArchiveItem{
		ID:             newArchiveID(now),
		Title:          in.Title,
		Content:        in.Content,
		PDFURL:         in.PDFURL,
		CreatedAt:      now.UTC().Format(time.DateOnly),
		Language:       in.Language,
		IsDeepResearch: in.IsDeepResearch,
	}

	err := a.file.Update(func(items []ArchiveItem) []ArchiveItem {
		return append([]ArchiveItem{item}, items...)
	}, (*File[[]ArchiveItem]).Save)
	if err != nil {
		return ArchiveItem{}, err
	}
	return item, nil
}

// FindDuplicate returns an existing item for the same PDF and language
// whose content is a near-duplicate of in.Content. Items without a PDF URL
// are never considered duplicates.
func (a *Archive) FindDuplicate(in NewArchiveItem) (ArchiveItem, bool) {
	if in.PDFURL == "" {
		return ArchiveItem{}, false
	}
	for _, it := range a.file.Get() {
		if it.PDFURL == in.PDFURL && it.Language == in.Language && nearDuplicate(it.Content, in.Content) {
			return it, true
		}
	}
	return ArchiveItem{}, false
}

// Remove deletes the item with id.
func (a *Archive) Remove(id string) error {
	if _, ok := a.Get(id); !ok {
		return ErrNotFound
	}
	return a.file.Update(func(items []ArchiveItem) []ArchiveItem {
		out := make([]ArchiveItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	}, (*File[[]ArchiveItem]).Save)
}

// Get returns the item with id.
func (a *Archive) Get(id string) (ArchiveItem, bool) {
	for _, it := range a.file.Get() {
		if it.ID == id {
			return it, true
		}
	}
	return ArchiveItem{}, false
}

// Len returns the number of archived items.
func (a *Archive) Len() int {
	return len(a.file.Get())
}

// List returns items whose title or content contains search
// (case-insensitive) and whose language matches. An empty search matches
// everything, as does the language "all" or "".
func (a *Archive) List(search, language string) []ArchiveItem {
	needle := strings.ToLower(search)
	out := []ArchiveItem{}
	for _, it := range a.file.Get() {
		if language != "" && language != "all" && it.Language != language {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(it.Title), needle) &&
			!strings.Contains(strings.ToLower(it.Content), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// newArchiveID returns archive_<unix ms>_<9 random base36 chars>.
func newArchiveID(now time.Time) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var suffix [9]byte
	for i := range suffix {
		suffix[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return "archive_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix[:])
}
