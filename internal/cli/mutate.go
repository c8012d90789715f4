package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

// mutation is one of the manager's addressed operations.
type mutation struct {
	byIndex func(m *todo.Manager) func(ctx context.Context, visibleIndex int) (task.Task, error)
	byID    func(m *todo.Manager) func(ctx context.Context, ref string) (task.Task, error)
}

var (
	completeMutation = mutation{
		byIndex: func(m *todo.Manager) func(context.Context, int) (task.Task, error) { return m.Complete },
		byID:    func(m *todo.Manager) func(context.Context, string) (task.Task, error) { return m.CompleteID },
	}
	deleteMutation = mutation{
		byIndex: func(m *todo.Manager) func(context.Context, int) (task.Task, error) { return m.Delete },
		byID:    func(m *todo.Manager) func(context.Context, string) (task.Task, error) { return m.DeleteID },
	}
)

func (a *App) doneCommand(workDir string) *cobra.Command {
	return a.mutationCommand(workDir, &cobra.Command{
		Use:   "done <number|id>",
		Short: "Mark a task as completed",
	}, completeMutation)
}

func (a *App) removeCommand(workDir string) *cobra.Command {
	return a.mutationCommand(workDir, &cobra.Command{
		Use:     "rm <number|id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
	}, deleteMutation)
}

// mutationCommand wires a done/rm style command. A numeric argument is the
// task's number in the listing under --filter; anything else is an ID or
// unique ID prefix.
func (a *App) mutationCommand(workDir string, cmd *cobra.Command, op mutation) *cobra.Command {
	var filter string

	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
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

		ref := args[0]
		if n, convErr := strconv.Atoi(ref); convErr == nil {
			_, err = op.byIndex(s.manager)(cmd.Context(), n-1)
		} else {
			_, err = op.byID(s.manager)(cmd.Context(), ref)
		}
		if err != nil {
			return err
		}

		if s.fc.Quiet {
			return nil
		}
		msg := s.manager.Message()
		if msg == nil {
			return nil
		}
		return s.fc.Formatter().FormatMessage(a.stdout, msg.Text)
	}

	addFilterFlag(cmd, &filter)
	return cmd
}
