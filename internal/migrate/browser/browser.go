// Package browser implements an import provider for task lists exported from
// the dashboard's browser localStorage.
//
// Two export shapes are accepted: the task array itself, or an object mapping
// localStorage keys to their values, where the task list value is usually a
// JSON string holding the array.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dashkit/todo/internal/migrate"
	"github.com/dashkit/todo/internal/task"
)

// DefaultKey is the localStorage key the dashboard stores its list under.
const DefaultKey = "tareasList"

// Provider reads tasks from an export file.
type Provider struct {
	path string
	key  string
}

var _ migrate.Provider = (*Provider)(nil)

// New creates a provider for the export at path. An empty key means DefaultKey.
func New(path, key string) *Provider {
	if key == "" {
		key = DefaultKey
	}
	return &Provider{path: path, key: key}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "browser"
}

// Tasks reads the export and maps every element to a MigratedTask through
// the same record decoder the manager loads with. Elements without a
// description come back blank and other undecodable elements carry their
// decode error, so the engine reports both as failures. An unreadable file, a missing key, or a
// value that is not an array is an error.
func (p *Provider) Tasks(_ context.Context) ([]migrate.MigratedTask, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	list, err := p.extractList(data)
	if err != nil {
		return nil, err
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(list, &elems); err != nil {
		return nil, fmt.Errorf("task list in %s is not a JSON array: %w", p.path, err)
	}

	tasks := make([]migrate.MigratedTask, 0, len(elems))
	for _, raw := range elems {
		tasks = append(tasks, mapRecord(raw))
	}
	return tasks, nil
}

// extractList returns the JSON array bytes from either export shape.
func (p *Provider) extractList(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("export %s is empty", p.path)
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("export %s is not valid JSON: %w", p.path, err)
	}
	value, ok := entries[p.key]
	if !ok {
		return nil, fmt.Errorf("key %q not found in %s", p.key, p.path)
	}

	// localStorage values are strings; a hand-edited export may hold the
	// array directly.
	var encoded string
	if err := json.Unmarshal(value, &encoded); err == nil {
		return []byte(encoded), nil
	}
	return value, nil
}

func mapRecord(raw json.RawMessage) migrate.MigratedTask {
	t, err := task.DecodeRecord(raw)
	switch {
	case errors.Is(err, task.ErrEmptyDescription):
		return migrate.MigratedTask{}
	case err != nil:
		return migrate.MigratedTask{Err: err}
	}
	return migrate.MigratedTask{Description: t.Description, Completed: t.Completed}
}
