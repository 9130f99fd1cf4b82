package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// defaultNullValues are the usual missing-value markers of CSV exports.
var defaultNullValues = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "null", "NULL", "None", "#N/A"}

// CSVOption configures ReadCSV.
type CSVOption func(*csvOptions)

type csvOptions struct {
	comma       rune
	inferKinds  bool
	indexColumn string
	nullValues  map[string]bool
}

// Comma sets the field delimiter.
func Comma(r rune) CSVOption {
	return func(o *csvOptions) {
		o.comma = r
	}
}

// InferKinds parses cells into ints, floats or bools when a whole column
// allows it, and turns null markers into nil. Without it every cell stays a
// string, which is what text validation usually wants.
func InferKinds() CSVOption {
	return func(o *csvOptions) {
		o.inferKinds = true
	}
}

// IndexColumn uses the named column as row keys instead of 0..n-1. The
// column is removed from the table.
func IndexColumn(name string) CSVOption {
	return func(o *csvOptions) {
		o.indexColumn = name
	}
}

// NullValues replaces the markers treated as missing when inferring kinds.
func NullValues(values ...string) CSVOption {
	return func(o *csvOptions) {
		o.nullValues = make(map[string]bool, len(values))
		for _, v := range values {
			o.nullValues[v] = true
		}
	}
}

// ReadCSV reads a table whose first record is the header.
func ReadCSV(r io.Reader, opts ...CSVOption) (*Table, error) {
	o := &csvOptions{comma: ','}
	for _, opt := range opts {
		opt(o)
	}
	if o.nullValues == nil {
		NullValues(defaultNullValues...)(o)
	}

	reader := csv.NewReader(r)
	reader.Comma = o.comma
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToReadCSV, err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrFailedToReadCSV, err)
		}
		for i, field := range record {
			cells[i] = append(cells[i], field)
		}
	}

	var index []any
	indexPos := -1
	if o.indexColumn != "" {
		for i, name := range header {
			if name == o.indexColumn {
				indexPos = i
				break
			}
		}
		if indexPos < 0 {
			return nil, fmt.Errorf("%w: %q", ErrIndexColumnMissing, o.indexColumn)
		}
		index = indexKeys(cells[indexPos])
	}

	columns := make([]*Column, 0, len(header))
	for i, name := range header {
		if i == indexPos {
			continue
		}
		values, kind := o.columnValues(cells[i])
		colOpts := []ColumnOption{WithKind(kind)}
		if index != nil {
			colOpts = append(colOpts, WithIndex(index))
		}
		col, err := NewColumn(strings.TrimSpace(name), values, colOpts...)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return New(columns...)
}

func (o *csvOptions) columnValues(raw []string) ([]any, Kind) {
	values := make([]any, len(raw))
	if !o.inferKinds {
		for i, s := range raw {
			values[i] = s
		}
		return values, KindString
	}

	ints, floats, bools := true, true, true
	for _, s := range raw {
		if o.nullValues[s] {
			continue
		}
		if ints {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				ints = false
			}
		}
		if floats {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				floats = false
			}
		}
		if bools {
			if _, ok := parseCSVBool(s); !ok {
				bools = false
			}
		}
	}

	kind := KindString
	switch {
	case ints:
		kind = KindInt
	case floats:
		kind = KindFloat
	case bools:
		kind = KindBool
	}

	for i, s := range raw {
		if o.nullValues[s] {
			values[i] = nil
			continue
		}
		switch kind {
		case KindInt:
			values[i], _ = strconv.ParseInt(s, 10, 64)
		case KindFloat:
			values[i], _ = strconv.ParseFloat(s, 64)
		case KindBool:
			values[i], _ = parseCSVBool(s)
		default:
			values[i] = s
		}
	}
	// A column of nothing but null markers carries no kind information.
	if kind == KindInt && allNil(values) {
		kind = KindMixed
	}
	return values, kind
}

func parseCSVBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func allNil(values []any) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}

// indexKeys turns index cells into int keys when all of them are integers.
func indexKeys(raw []string) []any {
	keys := make([]any, len(raw))
	for i, s := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			for j, s := range raw {
				keys[j] = s
			}
			return keys
		}
		keys[i] = n
	}
	return keys
}
