package geocode

import (
	"context"
	"sync"

	"postcard-gallery/core/utils"
)

// FileStore keeps the cache in memory and persists it as one JSON object.
type FileStore struct {
	path    string
	mu      sync.RWMutex
	entries map[string]Entry
	dirty   bool
}

// OpenFileStore loads the cache file at path. A missing file yields an empty cache.
func OpenFileStore(path string) (*FileStore, error) {
	entries := make(map[string]Entry)
	if _, err := utils.ReadJSONFile(path, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}
	return &FileStore{path: path, entries: entries}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the entry stored under key.
func (s *FileStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok, nil
}

// Put records an entry in memory; Flush writes it to disk.
func (s *FileStore) Put(_ context.Context, key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	s.dirty = true
	return nil
}

// Flush writes the cache file if any entry changed since it was loaded.
func (s *FileStore) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := utils.WriteJSONFile(s.path, s.entries); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Len returns the number of cached entries.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
