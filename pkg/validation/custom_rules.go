package validation

import (
	"github.com/dmitrymomot/tableschema/pkg/table"
)

// ElementPredicate reports whether a single cell is valid.
type ElementPredicate func(v any) bool

// SeriesPredicate computes a mask for a whole column.
type SeriesPredicate func(col *table.Column) (Mask, error)

type elementChecker struct {
	fn      ElementPredicate
	message string
}

// CustomElement builds a rule from a per-cell predicate. The message is
// required; it is prefixed with the row, column and value when reported.
func CustomElement(fn ElementPredicate, message string, opts ...Option) (*Rule, error) {
	if fn == nil {
		return nil, ErrNilPredicate
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}
	return NewRule(elementChecker{fn: fn, message: message}, opts...), nil
}

func (c elementChecker) Validate(col *table.Column) (Mask, error) {
	return Elementwise(col, c.fn), nil
}

func (c elementChecker) DefaultMessage() string { return c.message }

type seriesChecker struct {
	fn      SeriesPredicate
	message string
}

// CustomSeries builds a rule from a whole-column predicate. The returned mask
// must have one entry per cell.
func CustomSeries(fn SeriesPredicate, message string, opts ...Option) (*Rule, error) {
	if fn == nil {
		return nil, ErrNilPredicate
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}
	return NewRule(seriesChecker{fn: fn, message: message}, opts...), nil
}

func (c seriesChecker) Validate(col *table.Column) (Mask, error) {
	return c.fn(col)
}

func (c seriesChecker) DefaultMessage() string { return c.message }
