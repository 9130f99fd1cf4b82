package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/dmitrymomot/tableschema/pkg/validation"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Result is the outcome of one validation run.
type Result struct {
	RunID    string               `json:"run_id"`
	Source   string               `json:"source"`
	Rows     int                  `json:"rows"`
	Columns  int                  `json:"columns"`
	Warnings []validation.Warning `json:"warnings"`
}

// Valid reports whether the run produced no warnings.
func (r Result) Valid() bool { return len(r.Warnings) == 0 }

type jsonResult struct {
	RunID    string               `json:"run_id,omitempty"`
	Source   string               `json:"source"`
	Rows     int                  `json:"rows"`
	Columns  int                  `json:"columns"`
	Valid    bool                 `json:"valid"`
	Warnings []validation.Warning `json:"warnings"`
}

// Write renders r to w.
//
// The text format prints one warning per line followed by a summary line. The
// JSON format writes a single object with a "valid" flag.
func Write(w io.Writer, r Result, format Format) error {
	var err error
	switch format {
	case FormatText:
		err = writeText(w, r)
	case FormatJSON:
		ws := r.Warnings
		if ws == nil {
			ws = []validation.Warning{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(jsonResult{
			RunID:    r.RunID,
			Source:   r.Source,
			Rows:     r.Rows,
			Columns:  r.Columns,
			Valid:    r.Valid(),
			Warnings: ws,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return errors.Join(ErrFailedToWrite, err)
	}
	return nil
}

func writeText(w io.Writer, r Result) error {
	var b strings.Builder
	for _, warning := range r.Warnings {
		b.WriteString(warning.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s: %d rows, %d columns, %d %s\n",
		r.Source, r.Rows, r.Columns, len(r.Warnings), plural(len(r.Warnings), "warning", "warnings"))
	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
