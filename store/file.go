package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a JSON document persisted at a path, with change notification.
//
// Load reads the document at startup; every successful Update saves it and
// then notifies subscribers with the new value.
type File[T any] struct {
	path string

	// updMu serialises Update so a rollback never clobbers a later write.
	updMu sync.Mutex
	mu    sync.RWMutex
	value T

	subMu  sync.Mutex
	subs   map[int]func(T)
	nextID int
}

// NewFile creates a store for path holding initial until Load succeeds.
func NewFile[T any](path string, initial T) *File[T] {
	return &File[T]{
		path:  path,
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Path returns the backing file path.
func (f *File[T]) Path() string {
	return f.path
}

// Load replaces the in-memory value with the file contents. A missing file
// is not an error and leaves the current value in place.
func (f *File[T]) Load() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", f.path, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("store: decode %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
	return nil
}

// Save writes the current value to disk atomically.
func (f *File[T]) Save() error {
	f.mu.RLock()
	data, err := json.MarshalIndent(f.value, "", "  ")
	f.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", f.path, err)
	}
	return writeAtomic(f.path, data)
}

// Remove deletes the backing file. A missing file is not an error.
func (f *File[T]) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove %s: %w", f.path, err)
	}
	return nil
}

// Get returns the current value.
func (f *File[T]) Get() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Update applies fn to the current value, persists the result with persist
// and notifies subscribers. If persisting fails the in-memory value is
// rolled back.
func (f *File[T]) Update(fn func(T) T, persist func(*File[T]) error) error {
	f.updMu.Lock()
	defer f.updMu.Unlock()

	f.mu.Lock()
	prev := f.value
	f.value = fn(prev)
	next := f.value
	f.mu.Unlock()

	if err := persist(f); err != nil {
		f.mu.Lock()
		f.value = prev
		f.mu.Unlock()
		return err
	}

	f.notify(next)
	return nil
}

// Subscribe registers fn to be called after every successful Update.
// The returned function removes the subscription.
func (f *File[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	f.subMu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.subMu.Unlock()

	return func() {
		f.subMu.Lock()
		delete(f.subs, id)
		f.subMu.Unlock()
	}
}

func (f *File[T]) notify(v T) {
	f.subMu.Lock()
	fns := make([]func(T), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.subMu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// writeAtomic writes data to a temp file in the same directory and renames
// it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename %s: %w", path, err)
	}
	return nil
}
