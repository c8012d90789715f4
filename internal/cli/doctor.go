package cli

import (
	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/doctor"
)

func (a *App) doctorCommand(workDir string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the stored task list for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The list is read raw rather than through the manager so that
			// nothing is discarded or rewritten before it is inspected.
			s, err := a.openSession(workDir)
			if err != nil {
				return err
			}
			defer s.Close()

			src := doctor.ReadSource(cmd.Context(), s.store, s.cfg.Storage.Key)
			s.fc.Logger.Log("doctor: read " + s.cfg.Storage.Key)

			report := doctor.NewRunner(doctor.DefaultChecks()...).Run(doctor.WithSource(cmd.Context(), src))
			if err := doctor.WriteReport(a.stdout, report); err != nil {
				return err
			}

			if code := report.ExitCode(); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}
