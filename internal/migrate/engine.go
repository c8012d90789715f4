package migrate

import "context"

// TaskCreator stores an imported task and returns its new ID.
type TaskCreator interface {
	CreateTask(ctx context.Context, t MigratedTask) (string, error)
}

// Engine feeds a provider's tasks to a TaskCreator.
type Engine struct {
	creator TaskCreator
}

func NewEngine(creator TaskCreator) *Engine {
	return &Engine{creator: creator}
}

// Run imports every task from provider in order. Invalid tasks are reported
// and skipped. A creator failure ends the run, returning the results so far
// (including the failed task) with the error. A provider failure returns nil
// results.
func (e *Engine) Run(ctx context.Context, provider Provider) ([]Result, error) {
	tasks, err := provider.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(tasks))
	for _, t := range tasks {
		res, fatal := e.importOne(ctx, t)
		results = append(results, res)
		if fatal {
			return results, res.Err
		}
	}
	return results, nil
}

// importOne reports whether a failure should stop the run.
func (e *Engine) importOne(ctx context.Context, t MigratedTask) (Result, bool) {
	res := Result{Description: t.Label()}
	if res.Err = t.Validate(); res.Err != nil {
		return res, false
	}
	if _, res.Err = e.creator.CreateTask(ctx, t); res.Err != nil {
		return res, true
	}
	res.Success = true
	return res, false
}
