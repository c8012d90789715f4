package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const timeFormat = "2006-01-02T15:04:05Z"

// taskJSON is the stored representation of a task. It controls field
// ordering and timestamp format.
type taskJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Created     string `json:"created,omitempty"`
}

// legacyJSON accepts both the current keys and the Spanish keys written by
// the browser widget (descripcion, completada). Records from the browser
// carry no id or created fields.
type legacyJSON struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Descripcion *string `json:"descripcion"`
	Completada  *bool   `json:"completada"`
	Created     string  `json:"created"`
}

func toJSON(t Task) taskJSON {
	j := taskJSON{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
	}
	if !t.Created.IsZero() {
		j.Created = t.Created.UTC().Format(timeFormat)
	}
	return j
}

func fromJSON(j legacyJSON) (Task, error) {
	t := Task{ID: j.ID}

	switch {
	case j.Description != nil:
		t.Description = *j.Description
	case j.Descripcion != nil:
		t.Description = *j.Descripcion
	}
	if TrimDescription(t.Description) == "" {
		return Task{}, ErrEmptyDescription
	}

	switch {
	case j.Completed != nil:
		t.Completed = *j.Completed
	case j.Completada != nil:
		t.Completed = *j.Completada
	}

	if j.Created != "" {
		created, err := ParseCreated(j.Created)
		if err != nil {
			return Task{}, err
		}
		t.Created = created
	}

	return t, nil
}

// ParseCreated parses a stored creation timestamp.
func ParseCreated(value string) (time.Time, error) {
	created, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created timestamp %q: %w", value, err)
	}
	return created, nil
}

// DecodeRecord decodes one stored task object. It accepts the current keys
// and the Spanish keys written by the browser widget. A missing or blank
// description wraps ErrEmptyDescription; any other error means raw is not a
// task object or one of its fields has the wrong type or format.
func DecodeRecord(raw []byte) (Task, error) {
	var j legacyJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return Task{}, fmt.Errorf("not a task object: %w", err)
	}
	return fromJSON(j)
}

// Marshal serializes tasks to a JSON array in list order. A nil or empty
// list encodes as [].
func Marshal(tasks []Task) ([]byte, error) {
	out := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		out[i] = toJSON(t)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON array of tasks. Empty input and a JSON null both
// yield an empty list. Any element DecodeRecord rejects makes the whole
// payload invalid. Records without an ID are returned with an empty ID; see
// RepairIDs.
func Unmarshal(data []byte) ([]Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []Task{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse task list: %w", err)
	}

	tasks := make([]Task, 0, len(raw))
	for i, r := range raw {
		t, err := DecodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse task at index %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// RepairIDs gives a freshly generated ID, in place, to every task that has
// none or whose ID (compared case-insensitively) already belongs to an
// earlier task. The first holder of an ID keeps it. It returns the number of
// IDs assigned.
func RepairIDs(tasks []Task) (int, error) {
	taken := make(map[string]bool, len(tasks))
	var repair []int
	for i, t := range tasks {
		id := NormalizeID(t.ID)
		if id == "" || taken[id] {
			repair = append(repair, i)
			continue
		}
		taken[id] = true
	}

	for n, i := range repair {
		id, err := GenerateID(func(candidate string) bool {
			return taken[candidate]
		})
		if err != nil {
			return n, err
		}
		taken[id] = true
		tasks[i].ID = id
	}
	return len(repair), nil
}
