package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockFileName is the name of the lock file inside the store directory.
const lockFileName = "lock"

// FileStore keeps each key in its own <key>.json file inside a directory.
// Reads take a shared lock and writes take an exclusive lock on the
// directory's lock file, so separate processes see whole values only.
type FileStore struct {
	dir      string
	lockPath string
	opts     Options
}

// Compile-time check that FileStore satisfies Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at dir. The directory must exist.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("store directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store path is not a directory: %s", dir)
	}

	return &FileStore{
		dir:      dir,
		lockPath: filepath.Join(dir, lockFileName),
		opts:     ApplyOptions(opts...),
	}, nil
}

// Path returns the file that holds the value for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Close is a no-op; the FileStore holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}

// Get returns the stored value for key, or ErrNotFound if it was never written.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s.opts.Log(fmt.Sprintf("read: %s", filepath.Base(s.Path(key))))
	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the value for key using an atomic write (temp file + fsync + rename).
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	s.opts.Log(fmt.Sprintf("write: atomic write to %s", filepath.Base(s.Path(key))))
	if err := writeAtomic(s.Path(key), value); err != nil {
		return err
	}
	s.opts.Log(fmt.Sprintf("write: wrote %d bytes", len(value)))
	return nil
}

// lock acquires the directory lock, shared or exclusive, and returns its release func.
func (s *FileStore) lock(ctx context.Context, exclusive bool) (func(), error) {
	fl := flock.New(s.lockPath)

	kind := "shared"
	if exclusive {
		kind = "exclusive"
	}
	s.opts.Log(fmt.Sprintf("lock: acquiring %s lock", kind))

	ctx, cancel := context.WithTimeout(ctx, s.opts.LockTimeout)
	defer cancel()

	var locked bool
	var err error
	if exclusive {
		locked, err = fl.TryLockContext(ctx, 10*time.Millisecond)
	} else {
		locked, err = fl.TryRLockContext(ctx, 10*time.Millisecond)
	}
	if err != nil || !locked {
		return nil, fmt.Errorf("could not acquire lock on %s - another process may be using todo", s.lockPath)
	}
	s.opts.Log(fmt.Sprintf("lock: %s lock acquired", kind))

	return func() {
		_ = fl.Unlock()
		s.opts.Log(fmt.Sprintf("lock: %s lock released", kind))
	}, nil
}

// writeAtomic writes data to path via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".todo-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write value: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
