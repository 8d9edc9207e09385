// Package state persists the most recent terminal run to a local JSON file
// so the CLI can re-render the last checklist without the validation service.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cogai-labs/goldenthread/internal/validation"
)

// fileMutex provides global synchronization for snapshot file operations
var fileMutex sync.Mutex

// Store reads and writes run snapshots at a fixed path. The snapshot uses
// the service wire format, so a saved file is also a valid evidence-style
// export.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the last saved run snapshot.
// A missing file is not an error - it means no run was saved yet.
func (s *Store) Load() (*validation.Run, error) {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	run, err := validation.DecodeRun(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return run, nil
}

// Save writes the run snapshot, creating the parent directory if needed.
func (s *Store) Save(run *validation.Run) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	data, err := validation.EncodeRun(run)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
