package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) statsCommand(workDir string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total, pending and completed counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openManager(cmd.Context(), workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.fc.Formatter().FormatStats(a.stdout, s.manager.Counts())
		},
	}
}
