package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const header = "# todo configuration\n# Values here override ~/.config/todo/config.yaml; TODO_* environment variables override both.\n"

// fileConfig mirrors Config with durations rendered as strings.
type fileConfig struct {
	Storage struct {
		Backend     string `yaml:"backend"`
		Key         string `yaml:"key"`
		Database    string `yaml:"database"`
		LockTimeout string `yaml:"lock_timeout"`
	} `yaml:"storage"`
	Messages struct {
		TTL string `yaml:"ttl"`
	} `yaml:"messages"`
	Output struct {
		Format string `yaml:"format"`
	} `yaml:"output"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

// MarshalYAML renders durations in time.Duration string form so the file
// reads back through Load unchanged.
func (c Config) MarshalYAML() (interface{}, error) {
	var f fileConfig
	f.Storage.Backend = c.Storage.Backend
	f.Storage.Key = c.Storage.Key
	f.Storage.Database = c.Storage.Database
	f.Storage.LockTimeout = c.Storage.LockTimeout.String()
	f.Messages.TTL = c.Messages.TTL.String()
	f.Output.Format = c.Output.Format
	f.Server.Addr = c.Server.Addr
	return f, nil
}

// Write writes cfg as YAML to path, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	return Write(path, DefaultConfig())
}
