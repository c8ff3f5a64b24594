package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human-readable key/value output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON output.
	FormatJSON OutputFormat = "json"
)

// Field is a single labelled value in text output.
type Field struct {
	Label string
	Value any
}

// TextFielder is implemented by results that know how to present themselves
// as aligned "label: value" lines.
type TextFielder interface {
	TextFields() []Field
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format. An empty format means text.
func NewFormatter(format string) (Formatter, error) {
	switch OutputFormat(strings.ToLower(format)) {
	case FormatText, "":
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: must be 'text' or 'json'", format)
	}
}

// TextFormatter formats output as plain text.
type TextFormatter struct{}

// FormatTo writes data to w. TextFielder values are printed one field per
// line with labels aligned; anything else is printed with %v.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	tf, ok := data.(TextFielder)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	fields := tf.TextFields()
	width := 0
	for _, field := range fields {
		if len(field.Label) > width {
			width = len(field.Label)
		}
	}

	for _, field := range fields {
		if _, err := fmt.Fprintf(w, "%-*s %v\n", width+1, field.Label+":", field.Value); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to w in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}
