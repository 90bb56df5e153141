// internal/state/pending.go
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/studiobot/internal/types"
)

// PendingStore is a JSON-file-backed store for the pending-artifact mapping.
// The whole mapping is re-read at the start of every operation and rewritten
// wholesale at the end; the mutex plus atomic rename closes the
// read-modify-write window between operations in this process.
type PendingStore struct {
	path string
	mu   sync.RWMutex
}

// NewPendingStore creates a file-backed PendingStore at the given file path.
func NewPendingStore(path string) *PendingStore {
	return &PendingStore{path: path}
}

// Load returns the current mapping. A missing file is an empty mapping.
func (s *PendingStore) Load() (map[types.ArtifactID]*types.PendingArtifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Add inserts or replaces one entry. Used by the production pipeline when an
// artifact becomes ready.
func (s *PendingStore) Add(id types.ArtifactID, entry *types.PendingArtifact) error {
	return s.Mutate(func(m map[types.ArtifactID]*types.PendingArtifact) error {
		m[id] = entry
		return nil
	})
}

// Mutate runs fn over a freshly loaded mapping and persists the result. The
// store lock is held for the whole read-modify-write cycle.
func (s *PendingStore) Mutate(fn func(map[types.ArtifactID]*types.PendingArtifact) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	return s.save(m)
}

func (s *PendingStore) load() (map[types.ArtifactID]*types.PendingArtifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[types.ArtifactID]*types.PendingArtifact{}, nil
		}
		return nil, fmt.Errorf("read pending file: %w", err)
	}

	m := map[types.ArtifactID]*types.PendingArtifact{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal pending: %w", err)
	}
	return m, nil
}

// save writes the mapping to disk using atomic write (temp file + rename).
func (s *PendingStore) save(m map[types.ArtifactID]*types.PendingArtifact) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pending: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create pending dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp pending file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp pending file: %w", err)
	}
	return nil
}
