package report

import (
	"os"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks terminal or text output based on the output file
	FormatAuto Format = iota
	// FormatTerminal renders styled output for a color terminal
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
	// FormatJSON renders machine-readable JSON output
	FormatJSON
	// FormatYAML renders machine-readable YAML output
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
	}
}

// DetectFormat determines the appropriate output format based on terminal capabilities
func DetectFormat(output *os.File) Format {
	// Piped or redirected
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// Resolve replaces FormatAuto with the detected format for output
func (f Format) Resolve(output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}

// Interactive reports whether the format is meant for a person at a terminal
func (f Format) Interactive() bool {
	return f == FormatTerminal
}
