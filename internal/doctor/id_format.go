package doctor

import (
	"context"
	"fmt"
	"regexp"
)

// idFormatRegex matches task IDs: t- followed by exactly 6 lowercase hex chars.
var idFormatRegex = regexp.MustCompile(`^t-[0-9a-f]{6}$`)

// MissingIDCheck warns about records without an id. These come from the
// browser widget and are given IDs on the next load.
type MissingIDCheck struct{}

// Run executes the missing ID check.
func (c *MissingIDCheck) Run(ctx context.Context) []CheckResult {
	const name = "Task IDs"
	records, ok := getRecords(ctx)
	if !ok {
		return passed(name)
	}

	missing := 0
	for _, rec := range records {
		if rec.Fields == nil {
			continue
		}
		if id, _ := stringField(rec.Fields, "id"); id == "" {
			missing++
		}
	}

	if missing == 0 {
		return passed(name)
	}

	details := "1 task has no ID"
	if missing > 1 {
		details = fmt.Sprintf("%d tasks have no ID", missing)
	}
	return []CheckResult{{
		Name:       name,
		Passed:     false,
		Severity:   SeverityWarning,
		Details:    details,
		Suggestion: "Run todo list to assign IDs",
	}}
}

// IDFormatCheck validates that every id present matches t-{6 hex}. Records
// without an id are left to MissingIDCheck.
type IDFormatCheck struct{}

// Run executes the ID format check.
func (c *IDFormatCheck) Run(ctx context.Context) []CheckResult {
	const name = "ID format"
	records, ok := getRecords(ctx)
	if !ok {
		return passed(name)
	}

	var failures []CheckResult
	for _, rec := range records {
		if rec.Fields == nil {
			continue
		}
		val, exists := rec.Fields["id"]
		if !exists || val == "" {
			continue
		}

		id, isString := val.(string)
		display := id
		if !isString {
			display = formatNonStringID(val)
		}
		if !isString || !idFormatRegex.MatchString(id) {
			failures = append(failures, CheckResult{
				Name:       name,
				Passed:     false,
				Severity:   SeverityError,
				Details:    fmt.Sprintf("Task %d: invalid ID '%s' (expected t-{6 hex})", rec.Position, display),
				Suggestion: "Manual fix required",
			})
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return passed(name)
}

// formatNonStringID returns a display string for non-string id values.
func formatNonStringID(val any) string {
	if val == nil {
		return "<null>"
	}
	if num, ok := val.(float64); ok {
		if num == float64(int64(num)) {
			return fmt.Sprintf("%d", int64(num))
		}
		return fmt.Sprintf("%g", num)
	}
	return fmt.Sprintf("%v", val)
}
