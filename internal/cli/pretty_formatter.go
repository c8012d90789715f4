package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

// maxDescriptionWidth is the longest description shown in list output
// before truncation.
const maxDescriptionWidth = 60

// PrettyFormatter implements Formatter for human-readable terminal output:
// aligned columns, no borders or colors.
type PrettyFormatter struct{}

// FormatView renders the rows as an aligned table followed by a counters
// line. An empty view prints its placeholder text instead of the table.
func (f *PrettyFormatter) FormatView(w io.Writer, view todo.View) error {
	if view.Empty != todo.EmptyNone {
		fmt.Fprintln(w, view.Empty.Text())
	} else {
		numW := len("#")
		idW := len("ID")
		stateW := len("STATE")
		for _, r := range view.Rows {
			numW = max(numW, len(strconv.Itoa(r.Number())))
			idW = max(idW, len(r.ID))
			stateW = max(stateW, len(r.State))
		}

		rowFmt := fmt.Sprintf("%%%ds  %%-%ds  %%-%ds  %%s\n", numW, idW, stateW)
		fmt.Fprintf(w, rowFmt, "#", "ID", "STATE", "DESCRIPTION")
		for _, r := range view.Rows {
			desc := truncateDescription(r.Description, maxDescriptionWidth)
			fmt.Fprintf(w, rowFmt, strconv.Itoa(r.Number()), r.ID, r.State, desc)
		}
	}

	_, err := fmt.Fprintf(w, "\n%d total, %d pending, %d completed (showing %s)\n",
		view.Counts.Total, view.Counts.Pending, view.Counts.Completed, view.Filter)
	return err
}

// FormatTask renders a task as aligned key-value pairs.
func (f *PrettyFormatter) FormatTask(w io.Writer, t task.Task) error {
	fmt.Fprintf(w, "%-13s%s\n", "ID:", t.ID)
	fmt.Fprintf(w, "%-13s%s\n", "Description:", t.Description)
	fmt.Fprintf(w, "%-13s%s\n", "State:", t.StateLabel())
	if !t.Created.IsZero() {
		fmt.Fprintf(w, "%-13s%s\n", "Created:", task.FormatTimestamp(t.Created))
	}
	return nil
}

// FormatStats renders counters with right-aligned numbers.
func (f *PrettyFormatter) FormatStats(w io.Writer, counts task.Counts) error {
	width := numWidth([]int{counts.Total, counts.Pending, counts.Completed})
	fmt.Fprintf(w, "%-11s%*d\n", "Total:", width, counts.Total)
	fmt.Fprintf(w, "%-11s%*d\n", "Pending:", width, counts.Pending)
	_, err := fmt.Fprintf(w, "%-11s%*d\n", "Completed:", width, counts.Completed)
	return err
}

// FormatMessage renders a simple message as plain text.
func (f *PrettyFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

// numWidth returns the width of the widest number, at least 3.
func numWidth(nums []int) int {
	w := 3
	for _, n := range nums {
		w = max(w, len(strconv.Itoa(n)))
	}
	return w
}

// truncateDescription shortens s to maxWidth characters, appending "...".
func truncateDescription(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return string(runes[:maxWidth-3]) + "..."
}
