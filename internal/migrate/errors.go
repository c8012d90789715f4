package migrate

import (
	"fmt"
	"slices"
	"strings"
)

// UnknownProviderError reports an import source name that has no provider.
type UnknownProviderError struct {
	Name      string
	Available []string
}

func (e *UnknownProviderError) Error() string {
	names := slices.Clone(e.Available)
	slices.Sort(names)
	return fmt.Sprintf("unknown import source %q (available: %s)", e.Name, strings.Join(names, ", "))
}
