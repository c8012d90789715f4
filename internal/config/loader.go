package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file name inside a config directory.
const FileName = "config.yaml"

// GlobalConfigPath returns the path to the global config file, or "" when
// the user config directory cannot be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo", FileName)
}

// Load merges the defaults, the global config file, the config file in
// dataDir (skipped when dataDir is empty) and TODO_* environment variables,
// in increasing precedence. Missing files are skipped.
func Load(dataDir string) (*Config, error) {
	paths := []string{GlobalConfigPath()}
	if dataDir != "" {
		paths = append(paths, filepath.Join(dataDir, FileName))
	}
	return LoadFiles(paths...)
}

// LoadFiles merges the defaults, each existing file in order, and the
// environment.
func LoadFiles(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides apply on Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.database", d.Storage.Database)
	v.SetDefault("storage.lock_timeout", d.Storage.LockTimeout)
	v.SetDefault("messages.ttl", d.Messages.TTL)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("server.addr", d.Server.Addr)
}
