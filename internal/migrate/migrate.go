// Package migrate defines the contract types for importing tasks from
// external sources into a todo list.
package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/dashkit/todo/internal/task"
)

// MigratedTask represents a normalized task ready for insertion.
// Description is the only required field.
type MigratedTask struct {
	Description string
	Completed   bool
	// Err is set by a provider when the source record could not be decoded.
	Err error
}

// Validate checks that a MigratedTask would be accepted by the manager.
func (mt MigratedTask) Validate() error {
	if mt.Err != nil {
		return fmt.Errorf("invalid record: %w", mt.Err)
	}
	if err := task.ValidateDescription(mt.Description); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}
	return nil
}

// Label returns the description for display, or a placeholder when blank.
func (mt MigratedTask) Label() string {
	if strings.TrimSpace(mt.Description) == "" {
		return "(no description)"
	}
	return task.TrimDescription(mt.Description)
}

// Provider abstracts a source from which tasks can be imported.
type Provider interface {
	// Name returns the provider identifier (e.g. "browser") used in output.
	Name() string
	// Tasks returns all normalized tasks from the source, or an error if the
	// source cannot be read.
	Tasks(ctx context.Context) ([]MigratedTask, error)
}

// Result records the outcome of importing a single task.
type Result struct {
	Description string
	Success     bool
	Err         error // nil on success
}
