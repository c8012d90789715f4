package migrate

import (
	"fmt"
	"io"
)

// Tally splits results into imported and failed counts.
func Tally(results []Result) (imported, failed int) {
	for _, r := range results {
		if r.Success {
			imported++
		} else {
			failed++
		}
	}
	return imported, failed
}

// Present prints the import report:
//
//	Importing from browser... [dry-run]
//	  ✓ Task: Buy milk
//	  ✗ Task: (no description) (skipped: invalid description: ...)
//
//	Done: 1 imported, 1 failed
func Present(w io.Writer, providerName string, dryRun bool, results []Result) {
	suffix := ""
	if dryRun {
		suffix = " [dry-run]"
	}
	fmt.Fprintf(w, "Importing from %s...%s\n", providerName, suffix)

	for _, r := range results {
		label := r.Description
		if label == "" {
			label = "(no description)"
		}
		if r.Success {
			fmt.Fprintf(w, "  ✓ Task: %s\n", label)
		} else {
			fmt.Fprintf(w, "  ✗ Task: %s (skipped: %v)\n", label, r.Err)
		}
	}

	imported, failed := Tally(results)
	fmt.Fprintf(w, "\nDone: %d imported, %d failed\n", imported, failed)
}
