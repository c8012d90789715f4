// Package doctor inspects the stored task list as raw bytes, so problems are
// reported before the manager would discard or rewrite anything.
package doctor

import "context"

// Severity says whether a failed check makes doctor exit non-zero.
type Severity string

const (
	// SeverityError marks data todo would discard or misread.
	SeverityError Severity = "error"
	// SeverityWarning marks a state todo repairs by itself on the next write.
	SeverityWarning Severity = "warning"
)

// CheckResult is one finding. Passing results carry only Name.
type CheckResult struct {
	Name       string
	Passed     bool
	Severity   Severity
	Details    string
	Suggestion string
}

// Check inspects the Source carried by ctx. It returns a single passing
// result, or one failing result per problem found.
type Check interface {
	Run(ctx context.Context) []CheckResult
}

// Report is the combined output of a run, in check order.
type Report struct {
	Results []CheckResult
}

// Count returns the number of failed results of the given severity.
func (r Report) Count(sev Severity) int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed && res.Severity == sev {
			n++
		}
	}
	return n
}

// ExitCode is 1 when any error-severity check failed. Warnings alone exit 0.
func (r Report) ExitCode() int {
	if r.Count(SeverityError) > 0 {
		return 1
	}
	return 0
}

// Runner runs checks in order. A failing check never stops the ones after it.
type Runner struct {
	checks []Check
}

// NewRunner returns a runner for checks.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks}
}

// DefaultChecks is the set run by todo doctor. The checksum goes first since
// a mismatch explains most other failures on the SQLite backend.
func DefaultChecks() []Check {
	return []Check{
		&ChecksumCheck{},
		&JSONSyntaxCheck{},
		&RecordShapeCheck{},
		&MissingIDCheck{},
		&IDFormatCheck{},
		&DuplicateIDCheck{},
	}
}

// Run executes every check.
func (r *Runner) Run(ctx context.Context) Report {
	var report Report
	for _, c := range r.checks {
		report.Results = append(report.Results, c.Run(ctx)...)
	}
	return report
}
