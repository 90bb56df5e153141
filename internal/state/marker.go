// internal/state/marker.go
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/user/studiobot/internal/types"
)

// MarkerStore persists the single optional cancellation marker. Cleared at
// the start of each new conversation, written only on cancellation.
type MarkerStore struct {
	path string
}

// NewMarkerStore creates a MarkerStore at the given file path.
func NewMarkerStore(path string) *MarkerStore {
	return &MarkerStore{path: path}
}

// Write records a cancellation with the current time and the given reason.
func (s *MarkerStore) Write(reason string) error {
	marker := &types.CancelMarker{
		Cancelled: true,
		At:        time.Now(),
		Reason:    reason,
	}
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cancel marker: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create marker dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cancel marker: %w", err)
	}
	return nil
}

// Read returns the marker, or nil if none has been written.
func (s *MarkerStore) Read() (*types.CancelMarker, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cancel marker: %w", err)
	}
	var marker types.CancelMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf("unmarshal cancel marker: %w", err)
	}
	return &marker, nil
}

// Clear removes the marker file. A missing file is not an error.
func (s *MarkerStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cancel marker: %w", err)
	}
	return nil
}
