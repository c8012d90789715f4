// Package task defines the core task model, ID generation, filtering and
// field validation for the todo list.
package task

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// IDPrefix is prepended to every generated task ID.
const IDPrefix = "t-"

// Task represents a single entry in the todo list.
type Task struct {
	ID          string
	Description string
	Completed   bool
	Created     time.Time
}

// ErrEmptyDescription is returned when a description is empty after trimming.
var ErrEmptyDescription = errors.New("description is required")

const (
	maxRetries = 5
)

// GenerateID creates a new task ID in the format t-{6 hex chars}.
// The exists function checks if an ID is already in use.
func GenerateID(exists func(string) bool) (string, error) {
	for i := 0; i < maxRetries; i++ {
		b := make([]byte, 3)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		id := IDPrefix + hex.EncodeToString(b)
		if !exists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique ID after %d attempts - task list may be too large", maxRetries)
}

// NormalizeID converts an ID to lowercase for case-insensitive matching.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// TrimDescription removes leading and trailing whitespace from a description.
func TrimDescription(description string) string {
	return strings.TrimSpace(description)
}

// ValidateDescription rejects descriptions that are empty after trimming.
// Length and content are otherwise unrestricted.
func ValidateDescription(description string) error {
	if TrimDescription(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// NewTask creates a pending Task with the trimmed description.
func NewTask(id string, description string) Task {
	return Task{
		ID:          id,
		Description: TrimDescription(description),
		Created:     time.Now().UTC().Truncate(time.Second),
	}
}

// IDSet returns an existence checker over the normalized IDs of tasks,
// suitable for passing to GenerateID.
func IDSet(tasks []Task) func(string) bool {
	set := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		set[NormalizeID(t.ID)] = true
	}
	return func(id string) bool {
		return set[NormalizeID(id)]
	}
}

// StateLabel returns the display label for the task's completion state.
func (t Task) StateLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

// FormatTimestamp formats a time as ISO 8601 UTC (YYYY-MM-DDTHH:MM:SSZ).
// The zero time formats as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeFormat)
}
