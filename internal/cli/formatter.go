package cli

import (
	"io"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

// Formatter renders command output in one of the supported formats.
type Formatter interface {
	// FormatView renders the filtered rows, counters and empty state (todo list).
	FormatView(w io.Writer, view todo.View) error
	// FormatTask renders a single task (todo add).
	FormatTask(w io.Writer, t task.Task) error
	// FormatStats renders counters over the full list (todo stats).
	FormatStats(w io.Writer, counts task.Counts) error
	// FormatMessage renders a simple message (todo done, todo rm, todo init).
	FormatMessage(w io.Writer, msg string) error
}
