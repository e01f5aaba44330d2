package denoms

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Store is the persistent denomination cache: a JSON object file mapping
// bridge hash to resolved denomination. Entries are created on first
// resolution and never invalidated. Read-modify-write is serialized so
// overlapping resolutions cannot corrupt the file.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]Denomination
	loaded  bool
}

func NewStore(path string) *Store {
	return &Store{
		path:    path,
		entries: make(map[string]Denomination),
	}
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	contents, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read denom cache %s", s.path)
	}
	if err := json.Unmarshal(contents, &s.entries); err != nil {
		return errors.Wrapf(err, "failed to parse denom cache %s", s.path)
	}
	return nil
}

func (s *Store) Get(hash string) (Denomination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return Denomination{}, false
	}
	d, ok := s.entries[hash]
	return d, ok
}

// Put records a resolution and rewrites the cache file. Map keys are
// marshaled sorted, so the file stays diff-friendly across runs.
func (s *Store) Put(hash string, d Denomination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}
	s.entries[hash] = d

	contents, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode denom cache")
	}
	return errors.Wrapf(os.WriteFile(s.path, contents, 0644), "failed to write denom cache %s", s.path)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return 0
	}
	return len(s.entries)
}
