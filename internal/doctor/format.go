package doctor

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport prints a line per result, any suggestion indented under its
// finding, then a summary of errors and warnings.
func WriteReport(w io.Writer, r Report) error {
	var b strings.Builder
	for _, res := range r.Results {
		switch {
		case res.Passed:
			fmt.Fprintf(&b, "✓ %s\n", res.Name)
			continue
		case res.Severity == SeverityWarning:
			fmt.Fprintf(&b, "! %s: %s\n", res.Name, res.Details)
		default:
			fmt.Fprintf(&b, "✗ %s: %s\n", res.Name, res.Details)
		}
		if res.Suggestion != "" {
			fmt.Fprintf(&b, "  → %s\n", res.Suggestion)
		}
	}
	if len(r.Results) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(summary(r.Count(SeverityError), r.Count(SeverityWarning)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func summary(errs, warnings int) string {
	var parts []string
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	if len(parts) == 0 {
		return "No issues found."
	}
	return strings.Join(parts, " and ") + " found."
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
