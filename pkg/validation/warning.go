package validation

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// Warning is a single validation failure. Row and Column are set for cell
// warnings, where Value may still be nil for an empty cell. Whole-column
// rules only set Message.
type Warning struct {
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
	Row     any    `json:"row,omitempty"`
	Column  string `json:"column,omitempty"`
}

// IsCell reports whether the warning points at a specific cell.
func (w Warning) IsCell() bool {
	return w.Row != nil && w.Column != ""
}

// String renders the warning as `{row: 2, column: "Age"}: "5" message` for cell
// warnings and as the bare message otherwise.
func (w Warning) String() string {
	if !w.IsCell() {
		return w.Message
	}
	return fmt.Sprintf("{row: %v, column: \"%s\"}: \"%s\" %s", w.Row, w.Column, table.FormatValue(w.Value), w.Message)
}

// MarshalJSON writes non-finite floats in Value and Row as their text form
// ("inf", "-inf", "nan"), which JSON has no number for.
func (w Warning) MarshalJSON() ([]byte, error) {
	type plain Warning
	p := plain(w)
	p.Value = jsonScalar(w.Value)
	p.Row = jsonScalar(w.Row)
	return json.Marshal(p)
}

func jsonScalar(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return table.FormatValue(x)
		}
	case float32:
		if math.IsInf(float64(x), 0) || math.IsNaN(float64(x)) {
			return table.FormatValue(x)
		}
	}
	return v
}

// Warnings is a list of warnings in evaluation order.
type Warnings []Warning

// Columns returns the distinct column names in order of first appearance.
// Warnings without a column are skipped.
func (ws Warnings) Columns() []string {
	var names []string
	seen := make(map[string]bool)
	for _, w := range ws {
		if w.Column == "" || seen[w.Column] {
			continue
		}
		seen[w.Column] = true
		names = append(names, w.Column)
	}
	return names
}

// ForColumn returns the warnings reported for one column.
func (ws Warnings) ForColumn(name string) Warnings {
	var out Warnings
	for _, w := range ws {
		if w.Column == name {
			out = append(out, w)
		}
	}
	return out
}

// Strings renders every warning with String.
func (ws Warnings) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
