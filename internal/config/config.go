// Package config loads layered todo configuration: built-in defaults, the
// global config file, the project config file, then TODO_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/dashkit/todo/internal/storage"
)

// Backend names accepted in storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the full todo configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Messages MessagesConfig `yaml:"messages" mapstructure:"messages"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Key is the storage key holding the task list.
	Key string `yaml:"key" mapstructure:"key"`
	// Database is the SQLite file name, relative to the data directory.
	Database string `yaml:"database" mapstructure:"database"`
	// LockTimeout bounds how long the file backend waits for its lock.
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
}

// MessagesConfig controls transient messages.
type MessagesConfig struct {
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig sets the default output format. Empty means auto-detect.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures `todo serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     BackendFile,
			Key:         "tareasList",
			Database:    "todo.db",
			LockTimeout: 5 * time.Second,
		},
		Messages: MessagesConfig{
			TTL: 3 * time.Second,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend %q: must be %s or %s", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if err := storage.ValidateKey(c.Storage.Key); err != nil {
		return fmt.Errorf("invalid storage.key: %w", err)
	}
	if c.Storage.Backend == BackendSQLite {
		if err := storage.ValidateKey(c.Storage.Database); err != nil {
			return fmt.Errorf("invalid storage.database: %w", err)
		}
	}
	if c.Storage.LockTimeout <= 0 {
		return fmt.Errorf("storage.lock_timeout must be positive, got %s", c.Storage.LockTimeout)
	}
	if c.Messages.TTL <= 0 {
		return fmt.Errorf("messages.ttl must be positive, got %s", c.Messages.TTL)
	}
	switch c.Output.Format {
	case "", "toon", "pretty", "json":
	default:
		return fmt.Errorf("invalid output.format %q: must be toon, pretty, or json", c.Output.Format)
	}
	return nil
}
