package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	toon "github.com/toon-format/toon-go"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

// ToonFormatter implements Formatter using TOON (Token-Oriented Object
// Notation), the default for non-TTY output such as scripts and agents.
type ToonFormatter struct{}

const toonTaskHeader = "tasks[0]{number,id,description,state}:"

// FormatView renders a summary section followed by the rows in TOON tabular
// format. The empty state, when set, is appended as its own section.
func (f *ToonFormatter) FormatView(w io.Writer, view todo.View) error {
	sections := []string{
		"summary{filter,total,pending,completed}:\n  " + strings.Join([]string{
			toonEscapeValue(string(view.Filter)),
			strconv.Itoa(view.Counts.Total),
			strconv.Itoa(view.Counts.Pending),
			strconv.Itoa(view.Counts.Completed),
		}, ",") + "\n",
	}

	rows, err := f.buildRowsSection(view.Rows)
	if err != nil {
		return err
	}
	sections = append(sections, rows)

	if view.Empty != todo.EmptyNone {
		sections = append(sections, "empty: "+string(view.Empty)+"\n")
	}

	_, err = fmt.Fprint(w, strings.Join(sections, "\n"))
	return err
}

// FormatTask renders a single task as a one-row TOON object.
func (f *ToonFormatter) FormatTask(w io.Writer, t task.Task) error {
	header := "task{id,description,state,created}:"
	values := strings.Join([]string{
		toonEscapeValue(t.ID),
		toonEscapeValue(t.Description),
		toonEscapeValue(t.StateLabel()),
		toonEscapeValue(task.FormatTimestamp(t.Created)),
	}, ",")
	_, err := fmt.Fprint(w, header+"\n  "+values+"\n")
	return err
}

// FormatStats renders the counters as a one-row TOON object.
func (f *ToonFormatter) FormatStats(w io.Writer, counts task.Counts) error {
	_, err := fmt.Fprintf(w, "stats{total,pending,completed}:\n  %d,%d,%d\n",
		counts.Total, counts.Pending, counts.Completed)
	return err
}

// FormatMessage renders a simple message as plain text.
func (f *ToonFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func (f *ToonFormatter) buildRowsSection(rows []todo.Row) (string, error) {
	if len(rows) == 0 {
		return toonTaskHeader + "\n", nil
	}

	objects := make([]toon.Object, len(rows))
	for i, r := range rows {
		objects[i] = toon.NewObject(
			toon.Field{Key: "number", Value: r.Number()},
			toon.Field{Key: "id", Value: r.ID},
			toon.Field{Key: "description", Value: r.Description},
			toon.Field{Key: "state", Value: r.State},
		)
	}

	doc := toon.NewObject(toon.Field{Key: "tasks", Value: objects})
	result, err := toon.MarshalString(doc)
	if err != nil {
		return "", fmt.Errorf("toon marshal error: %w", err)
	}
	return result + "\n", nil
}

// toonEscapeValue quotes a value the way TOON does inside a tabular row.
func toonEscapeValue(s string) string {
	doc := toon.NewObject(
		toon.Field{Key: "a", Value: []toon.Object{
			toon.NewObject(toon.Field{Key: "v", Value: s}),
		}},
	)
	result, err := toon.MarshalString(doc)
	if err != nil {
		return s
	}
	// "a[1]{v}:\n  <value>"
	lines := strings.SplitN(result, "\n", 2)
	if len(lines) == 2 {
		return strings.TrimSpace(lines[1])
	}
	return s
}
