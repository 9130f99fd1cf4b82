package validation

import (
	"fmt"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// Mask holds one pass/fail flag per cell of a column; true means valid.
type Mask []bool

// NewMask returns a mask of length n with every position set to fill.
func NewMask(n int, fill bool) Mask {
	m := make(Mask, n)
	if fill {
		for i := range m {
			m[i] = true
		}
	}
	return m
}

// Not returns the position-wise negation of m.
func (m Mask) Not() Mask {
	out := make(Mask, len(m))
	for i, ok := range m {
		out[i] = !ok
	}
	return out
}

// And returns the position-wise conjunction of m and o.
func (m Mask) And(o Mask) (Mask, error) {
	return m.combine(o, func(a, b bool) bool { return a && b })
}

// Or returns the position-wise disjunction of m and o.
func (m Mask) Or(o Mask) (Mask, error) {
	return m.combine(o, func(a, b bool) bool { return a || b })
}

func (m Mask) combine(o Mask, op func(a, b bool) bool) (Mask, error) {
	if len(m) != len(o) {
		return nil, fmt.Errorf("%w: %d and %d", ErrMaskLength, len(m), len(o))
	}
	out := make(Mask, len(m))
	for i := range m {
		out[i] = op(m[i], o[i])
	}
	return out, nil
}

// Failing returns the positions that did not pass.
func (m Mask) Failing() []int {
	var out []int
	for i, ok := range m {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// Elementwise builds a mask by applying pass to every cell of the column.
func Elementwise(col *table.Column, pass func(v any) bool) Mask {
	m := make(Mask, col.Len())
	for i := range m {
		m[i] = pass(col.Value(i))
	}
	return m
}

// ElementwiseString is Elementwise over the cells rendered with table.FormatValue.
func ElementwiseString(col *table.Column, pass func(s string) bool) Mask {
	return Elementwise(col, func(v any) bool {
		return pass(table.FormatValue(v))
	})
}
