package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format names an output rendering.
type Format string

const (
	FormatToon   Format = "toon"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// FormatConfig is the output setup shared by every command.
type FormatConfig struct {
	Format  Format
	Quiet   bool
	Verbose bool
	Logger  *VerboseLogger
}

// DetectTTY reports whether w is a character device. Anything that is not
// an *os.File, such as a buffer in tests, is not a terminal.
func DetectTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// ResolveFormat picks the output format. forced holds the formats whose
// flags were given; at most one is allowed. Otherwise the configured format
// applies, and failing that a terminal gets pretty output and a pipe TOON.
func ResolveFormat(forced []Format, configured Format, isTTY bool) (Format, error) {
	switch {
	case len(forced) > 1:
		names := make([]string, len(forced))
		for i, f := range forced {
			names[i] = "--" + string(f)
		}
		return "", fmt.Errorf("cannot specify multiple format flags (%s)", strings.Join(names, ", "))
	case len(forced) == 1:
		return forced[0], nil
	case configured != "":
		return configured, nil
	case isTTY:
		return FormatPretty, nil
	}
	return FormatToon, nil
}

// forcedFormats lists the formats selected by flags.
func (o GlobalOpts) forcedFormats() []Format {
	var forced []Format
	if o.Toon {
		forced = append(forced, FormatToon)
	}
	if o.Pretty {
		forced = append(forced, FormatPretty)
	}
	if o.JSON {
		forced = append(forced, FormatJSON)
	}
	return forced
}

var formatters = map[Format]Formatter{
	FormatToon:   &ToonFormatter{},
	FormatPretty: &PrettyFormatter{},
	FormatJSON:   &JSONFormatter{},
}

// Formatter returns the renderer for c.Format, TOON when unset.
func (c FormatConfig) Formatter() Formatter {
	if f, ok := formatters[c.Format]; ok {
		return f
	}
	return formatters[FormatToon]
}
