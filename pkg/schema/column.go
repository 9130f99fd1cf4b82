package schema

import (
	"fmt"

	"github.com/dmitrymomot/tableschema/pkg/table"
	"github.com/dmitrymomot/tableschema/pkg/validation"
)

// Column binds a set of validations to a column name.
type Column struct {
	Name        string
	Validations []validation.Validation
	// AllowEmpty skips empty cells for every cell-level validation.
	AllowEmpty bool
}

// ColumnOption configures a Column.
type ColumnOption func(*Column)

// AllowEmpty lets empty cells pass the column's cell-level validations.
func AllowEmpty() ColumnOption {
	return func(c *Column) { c.AllowEmpty = true }
}

// NewColumn creates a schema column. The validations slice is copied.
func NewColumn(name string, validations []validation.Validation, opts ...ColumnOption) Column {
	c := Column{
		Name:        name,
		Validations: append([]validation.Validation(nil), validations...),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Column) check() error {
	if c.Name == "" {
		return ErrEmptyColumnName
	}
	for i, v := range c.Validations {
		if v == nil {
			return fmt.Errorf("%w: column %q position %d", ErrNilValidation, c.Name, i)
		}
	}
	return nil
}

// Validate runs every validation against col in declaration order, applying
// the column's allow-empty policy.
func (c Column) Validate(col *table.Column) ([]validation.Warning, error) {
	if col == nil {
		return nil, validation.ErrNilColumn
	}
	col = col.WithAllowEmpty(c.AllowEmpty)

	var out []validation.Warning
	for _, v := range c.Validations {
		ws, err := v.Errors(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		out = append(out, ws...)
	}
	return out, nil
}
