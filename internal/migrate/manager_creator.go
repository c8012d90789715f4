package migrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/dashkit/todo/internal/task"
)

// TaskAdder is the subset of the todo manager the importer writes through.
type TaskAdder interface {
	Add(ctx context.Context, description string) (task.Task, error)
	CompleteID(ctx context.Context, ref string) (task.Task, error)
	DeleteID(ctx context.Context, ref string) (task.Task, error)
}

// ManagerTaskCreator implements TaskCreator by adding each task through the
// manager, so every import is persisted like an interactive add.
type ManagerTaskCreator struct {
	adder TaskAdder
}

var _ TaskCreator = (*ManagerTaskCreator)(nil)

// NewManagerTaskCreator creates a ManagerTaskCreator writing through adder.
func NewManagerTaskCreator(adder TaskAdder) *ManagerTaskCreator {
	return &ManagerTaskCreator{adder: adder}
}

// CreateTask adds the task and marks it completed when the source says so.
// If completing fails the added task is removed again, so a failed import
// leaves the list as it was.
func (c *ManagerTaskCreator) CreateTask(ctx context.Context, mt MigratedTask) (string, error) {
	created, err := c.adder.Add(ctx, mt.Description)
	if err != nil {
		return "", err
	}
	if !mt.Completed {
		return created.ID, nil
	}

	if _, err := c.adder.CompleteID(ctx, created.ID); err != nil {
		err = fmt.Errorf("failed to complete imported task %s: %w", created.ID, err)
		if _, delErr := c.adder.DeleteID(ctx, created.ID); delErr != nil {
			return created.ID, errors.Join(err, fmt.Errorf("failed to remove pending copy: %w", delErr))
		}
		return "", err
	}
	return created.ID, nil
}
