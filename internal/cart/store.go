package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotFile is the fixed storage key for the persisted cart snapshot.
const SnapshotFile = "cart.json"

// Store persists the full cart line list. The cart is single-owner state for
// one profile; two concurrent writers simply overwrite each other (last write
// wins), so the store carries no locking.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStore keeps the cart snapshot as a JSON file under a state directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the persisted snapshot. A missing file is an empty cart, not an
// error.
func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, SnapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to parse cart snapshot: %w", err)
	}
	return lines, nil
}

// Save writes the full line list, replacing any previous snapshot.
func (s *FileStore) Save(lines []Line) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, SnapshotFile), data, 0o600); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}
