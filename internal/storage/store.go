// Package storage provides durable key/value stores that hold the todo list
// as a single JSON value overwritten wholesale on every write.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const defaultLockTimeout = 5 * time.Second

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrChecksum is returned by Get when a stored value fails its integrity check.
	ErrChecksum = errors.New("stored value failed checksum verification")
)

// Store is a durable key/value store. Set replaces the whole value for a key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Verifier is implemented by stores that can check the integrity of a stored
// value without decoding it.
type Verifier interface {
	Verify(ctx context.Context, key string) error
}

// RawReader is implemented by stores that can return a stored value even
// when it fails verification.
type RawReader interface {
	Raw(ctx context.Context, key string) ([]byte, error)
}

// Options holds settings shared by every backend.
type Options struct {
	LockTimeout time.Duration
	Verbose     func(msg string)
}

// Option configures a store.
type Option func(*Options)

// WithLockTimeout sets a custom lock timeout duration. The default is 5 seconds.
func WithLockTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.LockTimeout = d
	}
}

// WithVerbose sets a callback that receives verbose log messages for
// lock, read and write steps.
func WithVerbose(fn func(msg string)) Option {
	return func(o *Options) {
		o.Verbose = fn
	}
}

// ApplyOptions resolves opts over the defaults.
func ApplyOptions(opts ...Option) Options {
	o := Options{LockTimeout: defaultLockTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Log forwards msg to the verbose callback when one is set.
func (o Options) Log(msg string) {
	if o.Verbose != nil {
		o.Verbose(msg)
	}
}

// ValidateKey rejects keys that cannot be used as a file name or row key.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("storage key is required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("storage key %q must not contain path separators", key)
	}
	return nil
}
