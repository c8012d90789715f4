package todo

import (
	"time"

	"github.com/dashkit/todo/internal/task"
)

// EmptyState distinguishes the two kinds of empty list display.
type EmptyState string

const (
	// EmptyNone means at least one row is visible.
	EmptyNone EmptyState = ""
	// EmptyNoTasks means the backing list itself is empty.
	EmptyNoTasks EmptyState = "no-tasks"
	// EmptyNoMatch means tasks exist but none match the active filter.
	EmptyNoMatch EmptyState = "no-match"
)

// Text returns the placeholder shown for the empty state.
func (e EmptyState) Text() string {
	switch e {
	case EmptyNoTasks:
		return "No tasks in the list. Add a new task!"
	case EmptyNoMatch:
		return "No tasks match the current filter."
	default:
		return ""
	}
}

// Action is a per-row affordance offered to the display surface.
type Action string

const (
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
)

// Row is one visible task. VisibleIndex is the 0-based position in the
// filtered view and is what Complete and Delete expect.
type Row struct {
	VisibleIndex int      `json:"index"`
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	Completed    bool     `json:"completed"`
	State        string   `json:"state"`
	Actions      []Action `json:"actions"`
}

// Number returns the 1-based display number of the row.
func (r Row) Number() int {
	return r.VisibleIndex + 1
}

// MessageKind classifies a transient message.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a transient notice that disappears at Expires.
type Message struct {
	Kind    MessageKind `json:"kind"`
	Text    string      `json:"text"`
	Expires time.Time   `json:"expires"`
}

// View is everything a display surface needs to draw the list.
type View struct {
	Filter     task.Filter `json:"filter"`
	Rows       []Row       `json:"rows"`
	Counts     task.Counts `json:"counts"`
	Empty      EmptyState  `json:"empty,omitempty"`
	Input      string      `json:"input,omitempty"`
	InputError bool        `json:"input_error,omitempty"`
	Message    *Message    `json:"message,omitempty"`
}

// Renderer receives a fresh View after every operation.
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(View)

// Render calls f(v).
func (f RenderFunc) Render(v View) {
	f(v)
}

func buildRows(visible []task.Task) []Row {
	rows := make([]Row, len(visible))
	for i, t := range visible {
		actions := []Action{ActionDelete}
		if !t.Completed {
			actions = []Action{ActionComplete, ActionDelete}
		}
		rows[i] = Row{
			VisibleIndex: i,
			ID:           t.ID,
			Description:  t.Description,
			Completed:    t.Completed,
			State:        t.StateLabel(),
			Actions:      actions,
		}
	}
	return rows
}
