package migrate

import "context"

// DryRunTaskCreator accepts every task and stores nothing, for import --dry-run.
type DryRunTaskCreator struct{}

func (DryRunTaskCreator) CreateTask(context.Context, MigratedTask) (string, error) {
	return "", nil
}
