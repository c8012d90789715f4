package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/dashkit/todo/internal/task"
)

// DuplicateIDCheck fails once per ID shared by two or more tasks. IDs are
// compared the way the manager resolves them, ignoring case.
type DuplicateIDCheck struct{}

func (c *DuplicateIDCheck) Run(ctx context.Context) []CheckResult {
	const name = "ID uniqueness"
	records, ok := getRecords(ctx)
	if !ok {
		return passed(name)
	}

	var order []string
	seen := make(map[string][]string)
	for _, rec := range records {
		id, isString := stringField(rec.Fields, "id")
		if !isString || id == "" {
			continue
		}
		key := task.NormalizeID(id)
		if seen[key] == nil {
			order = append(order, key)
		}
		seen[key] = append(seen[key], fmt.Sprintf("%s (task %d)", id, rec.Position))
	}

	var failures []CheckResult
	for _, key := range order {
		if uses := seen[key]; len(uses) > 1 {
			failures = append(failures, CheckResult{
				Name:       name,
				Severity:   SeverityWarning,
				Details:    fmt.Sprintf("Duplicate ID %s: %s", key, strings.Join(uses, ", ")),
				Suggestion: "Later copies get a new ID on next load",
			})
		}
	}
	if failures == nil {
		return passed(name)
	}
	return failures
}
