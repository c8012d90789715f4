package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/dashkit/todo/internal/storage"
)

// ChecksumCheck verifies the stored checksum on backends that keep one.
// A mismatch means the next load discards the list.
type ChecksumCheck struct{}

// Run executes the checksum check.
func (c *ChecksumCheck) Run(ctx context.Context) []CheckResult {
	const name = "Checksum"
	src := getSource(ctx)
	if src.Verifier == nil {
		return passed(name)
	}

	err := src.Verifier.Verify(ctx, src.Key)
	switch {
	case err == nil, errors.Is(err, storage.ErrNotFound):
		return passed(name)
	case errors.Is(err, storage.ErrChecksum):
		return []CheckResult{{
			Name:       name,
			Passed:     false,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("stored checksum for %s does not match its value", src.Key),
			Suggestion: "The list will be discarded on next load; export it before running other commands",
		}}
	default:
		return []CheckResult{{
			Name:       name,
			Passed:     false,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("could not verify %s: %v", src.Key, err),
			Suggestion: "Check the storage settings in .todo/config.yaml",
		}}
	}
}
