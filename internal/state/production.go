// internal/state/production.go
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/studiobot/internal/types"
)

// ProductionStore writes finished intake results as individual JSON files,
// one per record, named by the generated identifier. The downstream pipeline
// picks records up from here.
type ProductionStore struct {
	dir string
}

// NewProductionStore creates a file-backed ProductionStore rooted at dir.
func NewProductionStore(dir string) *ProductionStore {
	return &ProductionStore{dir: dir}
}

func (s *ProductionStore) recordPath(id types.ProductionID) string {
	return filepath.Join(s.dir, string(id)+".json")
}

// Put persists a record and returns the path it was written to.
func (s *ProductionStore) Put(rec *types.ProductionRecord) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal production record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create productions dir: %w", err)
	}

	target := s.recordPath(rec.ID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp record: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename temp record: %w", err)
	}
	return target, nil
}

// Get reads a record back by ID.
func (s *ProductionStore) Get(id types.ProductionID) (*types.ProductionRecord, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		return nil, fmt.Errorf("read production record: %w", err)
	}
	var rec types.ProductionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal production record: %w", err)
	}
	return &rec, nil
}
