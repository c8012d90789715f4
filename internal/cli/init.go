package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/config"
	"github.com/dashkit/todo/internal/task"
)

func (a *App) initCommand(workDir string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a .todo directory with default config and an empty list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInit(cmd.Context(), workDir)
		},
	}
}

func (a *App) runInit(ctx context.Context, workDir string) error {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}
	dataDir := filepath.Join(absDir, DataDirName)

	if _, err := os.Stat(dataDir); err == nil {
		return fmt.Errorf("todo already initialized in %s", dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("could not create %s: %w", DataDirName, err)
	}
	if err := config.WriteDefault(filepath.Join(dataDir, config.FileName)); err != nil {
		return err
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	fc, err := a.formatConfig(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, dataDir, fc)
	if err != nil {
		return err
	}
	defer store.Close()

	empty, err := task.Marshal(nil)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, cfg.Storage.Key, empty); err != nil {
		return fmt.Errorf("could not write empty task list: %w", err)
	}

	if fc.Quiet {
		return nil
	}
	return fc.Formatter().FormatMessage(a.stdout, fmt.Sprintf("Initialized todo in %s/", dataDir))
}
