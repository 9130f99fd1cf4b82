package validation

import (
	"fmt"
	"math"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

type rangeChecker struct {
	min, max float64
}

// InRange checks that every cell, read as a number, lies in [min, max). Use
// math.Inf for an open bound. Empty cells read as NaN and fail; cells that are
// not numbers at all make Validate return table.ErrNotNumeric.
func InRange(min, max float64, opts ...Option) *Rule {
	return NewRule(rangeChecker{min: min, max: max}, opts...)
}

// AtLeast is InRange with no upper bound.
func AtLeast(min float64, opts ...Option) *Rule {
	return InRange(min, math.Inf(1), opts...)
}

// Below is InRange with no lower bound.
func Below(max float64, opts ...Option) *Rule {
	return InRange(math.Inf(-1), max, opts...)
}

func (c rangeChecker) Validate(col *table.Column) (Mask, error) {
	mask := make(Mask, col.Len())
	for i := range mask {
		v, err := table.ToNumber(col.Value(i))
		if err != nil {
			return nil, fmt.Errorf("column %q row %v: %w", col.Name(), col.Key(i), err)
		}
		mask[i] = v >= c.min && v < c.max
	}
	return mask, nil
}

func (c rangeChecker) DefaultMessage() string {
	return fmt.Sprintf("was not in the range [%s, %s)", table.FormatValue(c.min), table.FormatValue(c.max))
}
