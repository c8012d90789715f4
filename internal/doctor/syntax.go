package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dashkit/todo/internal/task"
)

// JSONSyntaxCheck validates that the stored list is a well-formed JSON array.
// todo discards a list that fails this check on the next load.
type JSONSyntaxCheck struct{}

// Run executes the syntax check.
func (c *JSONSyntaxCheck) Run(ctx context.Context) []CheckResult {
	const name = "JSON syntax"
	src := getSource(ctx)

	if src.Err != nil {
		return []CheckResult{{
			Name:       name,
			Passed:     false,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("task list %s could not be read: %v", src.Key, src.Err),
			Suggestion: "Check the storage settings in .todo/config.yaml",
		}}
	}

	if _, err := ScanRecords(src.Data); err != nil {
		details := fmt.Sprintf("task list %s is not a JSON array", src.Key)
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			details = fmt.Sprintf("task list %s is not valid JSON (offset %d): %s", src.Key, syntaxErr.Offset, syntaxErr.Error())
		}
		return []CheckResult{{
			Name:       name,
			Passed:     false,
			Severity:   SeverityError,
			Details:    details,
			Suggestion: "The list will be discarded on next load; restore it with todo import",
		}}
	}

	return passed(name)
}

// RecordShapeCheck validates that every record is an object with a non-empty
// description, a boolean completed flag and, when present, a created
// timestamp in the stored format. English and legacy Spanish keys are both
// accepted. A record the loader would still reject is reported with the
// decoder's reason.
type RecordShapeCheck struct{}

// Run executes the record shape check.
func (c *RecordShapeCheck) Run(ctx context.Context) []CheckResult {
	const name = "Task records"
	records, ok := getRecords(ctx)
	if !ok {
		return passed(name)
	}

	var failures []CheckResult
	fail := func(details string) {
		failures = append(failures, CheckResult{
			Name:       name,
			Passed:     false,
			Severity:   SeverityError,
			Details:    details,
			Suggestion: "The list will be discarded on next load; fix or remove the record",
		})
	}

	for _, rec := range records {
		if rec.Fields == nil {
			fail(fmt.Sprintf("Task %d: not a JSON object", rec.Position))
			continue
		}
		before := len(failures)

		desc, isString := stringField(rec.Fields, "description", "descripcion")
		switch {
		case !isString:
			fail(fmt.Sprintf("Task %d: missing description", rec.Position))
		case strings.TrimSpace(desc) == "":
			fail(fmt.Sprintf("Task %d: empty description", rec.Position))
		}

		for _, key := range []string{"completed", "completada"} {
			if v, present := rec.Fields[key]; present {
				if _, isBool := v.(bool); !isBool {
					fail(fmt.Sprintf("Task %d: %s must be true or false", rec.Position, key))
				}
				break
			}
		}

		if v, present := rec.Fields["created"]; present {
			created, isString := v.(string)
			switch {
			case !isString:
				fail(fmt.Sprintf("Task %d: created must be a timestamp string", rec.Position))
			case created == "":
			default:
				if _, err := task.ParseCreated(created); err != nil {
					fail(fmt.Sprintf("Task %d: invalid created timestamp %q", rec.Position, created))
				}
			}
		}

		if len(failures) == before {
			if _, err := task.DecodeRecord(rec.Raw); err != nil {
				fail(fmt.Sprintf("Task %d: %v", rec.Position, err))
			}
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return passed(name)
}
