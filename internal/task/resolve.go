package task

import (
	"errors"
	"fmt"
	"strings"
)

const minPrefixLength = 3

var (
	// ErrNotFound is returned when no task matches a reference.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned when a prefix matches more than one task.
	ErrAmbiguous = errors.New("ambiguous task ID")
)

// ResolveID resolves a full ID or a unique hex prefix to the full ID of a
// task in the list. The t- prefix is optional and matching is
// case-insensitive. An exact match wins without an ambiguity check.
func ResolveID(tasks []Task, input string) (string, error) {
	normalized := NormalizeID(input)
	hexPart := strings.TrimPrefix(normalized, IDPrefix)

	if len(hexPart) < minPrefixLength {
		return "", fmt.Errorf("partial ID must be at least %d hex characters: %q", minPrefixLength, input)
	}

	full := IDPrefix + hexPart
	for _, t := range tasks {
		if NormalizeID(t.ID) == full {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(NormalizeID(t.ID), full) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: '%s'", ErrNotFound, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w '%s' matches %s", ErrAmbiguous, input, strings.Join(matches, ", "))
	}
}

// IndexOf returns the position of the task with the given ID, or -1.
func IndexOf(tasks []Task, id string) int {
	normalized := NormalizeID(id)
	for i, t := range tasks {
		if NormalizeID(t.ID) == normalized {
			return i
		}
	}
	return -1
}
