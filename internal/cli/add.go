package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) addCommand(workDir string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a pending task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openManager(cmd.Context(), workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			created, err := s.manager.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if s.fc.Quiet {
				_, err := fmt.Fprintln(a.stdout, created.ID)
				return err
			}
			return s.fc.Formatter().FormatTask(a.stdout, created)
		},
	}
}
