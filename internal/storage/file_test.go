package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func newTestFileStore(t *testing.T, opts ...Option) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir, opts...)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return s, dir
}

func TestNewFileStore(t *testing.T) {
	t.Run("it errors when the directory does not exist", func(t *testing.T) {
		_, err := NewFileStore(filepath.Join(t.TempDir(), "missing"))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("it errors when the path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := NewFileStore(path)
		if err == nil || !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("error = %v, want not a directory", err)
		}
	})
}

func TestFileStoreGetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("it returns ErrNotFound for a key never written", func(t *testing.T) {
		s, _ := newTestFileStore(t)

		_, err := s.Get(ctx, "tareasList")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get error = %v, want ErrNotFound", err)
		}
	})

	t.Run("it writes the value to <key>.json", func(t *testing.T) {
		s, dir := newTestFileStore(t)

		if err := s.Set(ctx, "tareasList", []byte("[]")); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "tareasList.json"))
		if err != nil {
			t.Fatalf("reading value file: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("file content = %q, want %q", data, "[]")
		}
	})

	t.Run("it returns what was last written", func(t *testing.T) {
		s, _ := newTestFileStore(t)

		_ = s.Set(ctx, "k", []byte("one"))
		_ = s.Set(ctx, "k", []byte("two"))

		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if string(got) != "two" {
			t.Errorf("Get = %q, want %q", got, "two")
		}
	})

	t.Run("it leaves no temp files behind", func(t *testing.T) {
		s, dir := newTestFileStore(t)
		_ = s.Set(ctx, "k", []byte("x"))

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("it sees values written by another store on the same directory", func(t *testing.T) {
		s, dir := newTestFileStore(t)
		other, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}

		_ = other.Set(ctx, "k", []byte("external"))

		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if string(got) != "external" {
			t.Errorf("Get = %q, want %q", got, "external")
		}
	})

	t.Run("it rejects invalid keys", func(t *testing.T) {
		s, _ := newTestFileStore(t)
		for _, key := range []string{"", "  ", "../x", `a\b`, ".."} {
			if err := s.Set(ctx, key, []byte("x")); err == nil {
				t.Errorf("Set(%q) returned nil error", key)
			}
		}
	})
}

func TestFileStoreLocking(t *testing.T) {
	ctx := context.Background()

	t.Run("it returns error after lock timeout", func(t *testing.T) {
		s, dir := newTestFileStore(t, WithLockTimeout(50*time.Millisecond))

		externalLock := flock.New(filepath.Join(dir, "lock"))
		if err := externalLock.Lock(); err != nil {
			t.Fatalf("failed to acquire external lock: %v", err)
		}
		defer func() { _ = externalLock.Unlock() }()

		err := s.Set(ctx, "k", []byte("x"))
		if err == nil {
			t.Fatal("expected lock timeout error, got nil")
		}
		if !strings.Contains(err.Error(), "could not acquire lock") {
			t.Errorf("error = %q, want lock error", err.Error())
		}
	})

	t.Run("it allows reads while another reader holds a shared lock", func(t *testing.T) {
		s, dir := newTestFileStore(t, WithLockTimeout(50*time.Millisecond))
		_ = s.Set(ctx, "k", []byte("x"))

		externalLock := flock.New(filepath.Join(dir, "lock"))
		if err := externalLock.RLock(); err != nil {
			t.Fatalf("failed to acquire external shared lock: %v", err)
		}
		defer func() { _ = externalLock.Unlock() }()

		if _, err := s.Get(ctx, "k"); err != nil {
			t.Errorf("Get returned error under shared lock: %v", err)
		}
	})

	t.Run("it logs lock and write steps when verbose", func(t *testing.T) {
		var logged []string
		s, _ := newTestFileStore(t, WithVerbose(func(msg string) {
			logged = append(logged, msg)
		}))

		_ = s.Set(ctx, "k", []byte("abc"))

		want := []string{
			"lock: acquiring exclusive lock",
			"lock: exclusive lock acquired",
			"write: atomic write to k.json",
			"write: wrote 3 bytes",
			"lock: exclusive lock released",
		}
		if len(logged) != len(want) {
			t.Fatalf("logged %d messages, want %d: %v", len(logged), len(want), logged)
		}
		for i := range want {
			if logged[i] != want[i] {
				t.Errorf("log[%d] = %q, want %q", i, logged[i], want[i])
			}
		}
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("it round-trips values and copies them", func(t *testing.T) {
		s := NewMemoryStore()
		value := []byte("abc")
		_ = s.Set(ctx, "k", value)
		value[0] = 'z'

		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if string(got) != "abc" {
			t.Errorf("Get = %q, want %q", got, "abc")
		}
	})

	t.Run("it returns ErrNotFound for a missing key", func(t *testing.T) {
		if _, err := NewMemoryStore().Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get error = %v, want ErrNotFound", err)
		}
	})
}
