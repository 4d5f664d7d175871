// Package cache persists the last fetched standings to a local JSON file so
// the dashboard can show them when the API is unreachable.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	perrors "github.com/dbmrq/paddock/internal/errors"
)

// DefaultFilename is the cache file name inside the cache directory.
const DefaultFilename = "f1_cache.json"

// FormatVersion is written into every cache file.
const FormatVersion = "1"

// Entry is a single cached payload.
type Entry struct {
	FetchedAt time.Time       `json:"time"`
	Data      json.RawMessage `json:"data"`
}

// file is the on-disk layout.
type file struct {
	Version string           `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Store reads and writes cached standings keyed by kind and season.
// The whole file is rewritten on every Put; there is no cross-process locking.
type Store struct {
	path   string
	mu     sync.Mutex
	loaded bool
	data   *file
}

// NewStore creates a Store backed by path. Nothing is read until first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the cache file under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	return filepath.Join(dir, "paddock", DefaultFilename), nil
}

// Path returns the file path of the store.
func (s *Store) Path() string {
	return s.path
}

// Get decodes the entry stored under key into v.
// It reports ok=false with a nil error when the file or key does not exist.
func (s *Store) Get(key string, v any) (fetchedAt time.Time, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return time.Time{}, false, err
	}

	entry, found := s.data.Entries[key]
	if !found {
		return time.Time{}, false, nil
	}

	if err := json.Unmarshal(entry.Data, v); err != nil {
		return time.Time{}, false, perrors.CacheUnavailable(s.path, err).WithDetails("key", key)
	}
	return entry.FetchedAt, true, nil
}

// Put stores v under key stamped with fetchedAt, replacing any previous value,
// and writes the file.
func (s *Store) Put(key string, v any, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %s: %w", key, err)
	}

	if err := s.load(); err != nil {
		// An unreadable file is replaced rather than blocking new entries.
		s.data = &file{Version: FormatVersion, Entries: map[string]Entry{}}
		s.loaded = true
	}

	s.data.Entries[key] = Entry{FetchedAt: fetchedAt.UTC(), Data: raw}
	return s.save()
}

// Keys returns the cached keys, mainly for diagnostics.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.data.Entries))
	for k := range s.data.Entries {
		keys = append(keys, k)
	}
	return keys, nil
}

// load reads the file once. Callers hold s.mu.
func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = &file{Version: FormatVersion, Entries: map[string]Entry{}}
			s.loaded = true
			return nil
		}
		return perrors.CacheUnavailable(s.path, err)
	}

	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return perrors.CacheUnavailable(s.path, err)
	}
	if f.Entries == nil {
		f.Entries = map[string]Entry{}
	}

	s.data = &f
	s.loaded = true
	return nil
}

// save writes the file. Callers hold s.mu.
func (s *Store) save() error {
	s.data.Version = FormatVersion

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return perrors.CacheUnavailable(s.path, err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return perrors.CacheUnavailable(s.path, err)
	}
	return nil
}
