package cli

import (
	"fmt"
	"io"

	"github.com/dashkit/todo/internal/storage"
)

// VerboseLogger prints "verbose: " lines for --verbose. The nil logger
// drops everything, so callers never check whether verbose is on.
type VerboseLogger struct {
	w io.Writer
}

// NewVerboseLogger returns nil unless enabled.
func NewVerboseLogger(w io.Writer, enabled bool) *VerboseLogger {
	if enabled {
		return &VerboseLogger{w: w}
	}
	return nil
}

func (vl *VerboseLogger) Log(msg string) {
	if vl != nil {
		fmt.Fprintln(vl.w, "verbose: "+msg)
	}
}

// storeOpts hooks the storage backends into the verbose log.
func storeOpts(fc FormatConfig) []storage.Option {
	if fc.Logger == nil {
		return nil
	}
	return []storage.Option{storage.WithVerbose(fc.Logger.Log)}
}
