package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/dashkit/todo/internal/config"
	"github.com/dashkit/todo/internal/storage"
	"github.com/dashkit/todo/internal/storage/sqlite"
	"github.com/dashkit/todo/internal/todo"
)

// session is everything a command needs once the project is found: the
// merged config, the output settings and an open store.
type session struct {
	dataDir string
	cfg     *config.Config
	fc      FormatConfig
	store   storage.Store
	manager *todo.Manager
}

// openSession discovers the data directory from workDir, loads config,
// resolves the output format and opens the configured store.
func (a *App) openSession(workDir string) (*session, error) {
	dataDir, err := DiscoverDataDir(workDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	fc, err := a.formatConfig(cfg)
	if err != nil {
		return nil, err
	}
	fc.Logger.Log(fmt.Sprintf("config: data dir %s, backend %s, key %s", dataDir, cfg.Storage.Backend, cfg.Storage.Key))

	store, err := openStore(cfg, dataDir, fc)
	if err != nil {
		return nil, err
	}

	return &session{dataDir: dataDir, cfg: cfg, fc: fc, store: store}, nil
}

// openManager opens a session and loads the task list.
func (a *App) openManager(ctx context.Context, workDir string) (*session, error) {
	s, err := a.openSession(workDir)
	if err != nil {
		return nil, err
	}

	s.manager = a.newManager(s.store, s.cfg, s.fc)
	if err := s.manager.Load(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (a *App) newManager(store storage.Store, cfg *config.Config, fc FormatConfig) *todo.Manager {
	return todo.New(store,
		todo.WithKey(cfg.Storage.Key),
		todo.WithMessageTTL(cfg.Messages.TTL),
		todo.WithLogger(log.New(a.stderr, "", 0)),
		todo.WithVerbose(fc.Logger.Log),
	)
}

// Close releases the store.
func (s *session) Close() error {
	return s.store.Close()
}

// formatConfig resolves the output settings from global flags and config.
func (a *App) formatConfig(cfg *config.Config) (FormatConfig, error) {
	format, err := ResolveFormat(a.opts.forcedFormats(), Format(cfg.Output.Format), a.isTTY(a.stdout))
	if err != nil {
		return FormatConfig{}, err
	}
	return FormatConfig{
		Format:  format,
		Quiet:   a.opts.Quiet,
		Verbose: a.opts.Verbose,
		Logger:  NewVerboseLogger(a.stderr, a.opts.Verbose),
	}, nil
}

// openStore opens the backend named in cfg inside dataDir.
func openStore(cfg *config.Config, dataDir string, fc FormatConfig) (storage.Store, error) {
	opts := append([]storage.Option{storage.WithLockTimeout(cfg.Storage.LockTimeout)}, storeOpts(fc)...)

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.Open(filepath.Join(dataDir, cfg.Storage.Database), opts...)
	case config.BackendFile, "":
		return storage.NewFileStore(dataDir, opts...)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
