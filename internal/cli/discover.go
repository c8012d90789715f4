package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DataDirName is the per-project directory holding the task list and config.
const DataDirName = ".todo"

// ErrNotInitialized is returned when no .todo directory is found.
var ErrNotInitialized = errors.New("not a todo project (no .todo directory found); run todo init")

// DiscoverDataDir returns the absolute path of the nearest .todo directory
// at or above startDir.
func DiscoverDataDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		candidate := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrNotInitialized
}
