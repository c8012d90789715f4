package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/task"
)

func (a *App) listCommand(workDir string) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks under a filter with counters over the whole list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := task.ParseFilter(filter)
			if err != nil {
				return err
			}

			s, err := a.openManager(cmd.Context(), workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			s.manager.SetFilter(f)
			view := s.manager.Render()

			if s.fc.Quiet {
				for _, r := range view.Rows {
					fmt.Fprintln(a.stdout, r.ID)
				}
				return nil
			}
			return s.fc.Formatter().FormatView(a.stdout, view)
		},
	}
	addFilterFlag(cmd, &filter)
	return cmd
}

func addFilterFlag(cmd *cobra.Command, filter *string) {
	cmd.Flags().StringVarP(filter, "filter", "f", string(task.FilterAll), "all, pending or completed")
}
