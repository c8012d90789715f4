package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

// JSONFormatter implements Formatter with 2-space indented JSON. All keys
// use snake_case.
type JSONFormatter struct{}

// jsonTask is the JSON representation of a single task.
type jsonTask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	State       string `json:"state"`
	Created     string `json:"created,omitempty"`
}

// jsonView mirrors todo.View with rows always encoded as an array.
type jsonView struct {
	Filter task.Filter     `json:"filter"`
	Rows   []todo.Row      `json:"rows"`
	Counts task.Counts     `json:"counts"`
	Empty  todo.EmptyState `json:"empty,omitempty"`
}

type jsonMessage struct {
	Message string `json:"message"`
}

// FormatView renders the view with rows, counters and empty state.
func (f *JSONFormatter) FormatView(w io.Writer, view todo.View) error {
	rows := view.Rows
	if rows == nil {
		rows = []todo.Row{}
	}
	return writeJSON(w, jsonView{
		Filter: view.Filter,
		Rows:   rows,
		Counts: view.Counts,
		Empty:  view.Empty,
	})
}

// FormatTask renders a single task object.
func (f *JSONFormatter) FormatTask(w io.Writer, t task.Task) error {
	return writeJSON(w, jsonTask{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		State:       t.StateLabel(),
		Created:     task.FormatTimestamp(t.Created),
	})
}

// FormatStats renders the counters object.
func (f *JSONFormatter) FormatStats(w io.Writer, counts task.Counts) error {
	return writeJSON(w, counts)
}

// FormatMessage renders {"message": msg}.
func (f *JSONFormatter) FormatMessage(w io.Writer, msg string) error {
	return writeJSON(w, jsonMessage{Message: msg})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
