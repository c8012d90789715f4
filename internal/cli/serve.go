package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/server"
	"github.com/dashkit/todo/internal/storage"
)

func (a *App) serveCommand(workDir string) *cobra.Command {
	var (
		addr   string
		memory bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			var store storage.Store = s.store
			if memory {
				store = storage.NewMemoryStore()
				s.fc.Logger.Log("serve: using in-memory store")
			}

			manager := a.newManager(store, s.cfg, s.fc)
			if err := manager.Load(cmd.Context()); err != nil {
				return err
			}

			if addr == "" {
				addr = s.cfg.Server.Addr
			}
			if !s.fc.Quiet {
				fmt.Fprintf(a.stdout, "Serving todo API on http://%s\n", addr)
			}
			return server.New(manager).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&memory, "memory", false, "keep the list in memory only")
	return cmd
}
