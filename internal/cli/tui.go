package cli

import (
	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/tui"
)

func (a *App) tuiCommand(workDir string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Manage the task list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openManager(cmd.Context(), workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			return tui.Run(cmd.Context(), s.manager, s.cfg.Messages.TTL)
		},
	}
}
