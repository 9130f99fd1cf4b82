package table

import (
	"fmt"
	"reflect"
)

// Column is a named, indexed sequence of scalar values. Columns are immutable
// once built; derived views share the backing slices.
type Column struct {
	name       string
	kind       Kind
	allowEmpty bool
	values     []any
	index      []any
}

// ColumnOption configures a Column built by NewColumn.
type ColumnOption func(*columnOptions)

type columnOptions struct {
	index      []any
	kind       *Kind
	allowEmpty bool
}

// WithIndex sets the row keys of the column. Keys must be non-nil comparable
// values; they are kept as given, so sparse or non-numeric indexes survive.
func WithIndex(keys []any) ColumnOption {
	return func(o *columnOptions) {
		o.index = keys
	}
}

// WithKind declares the column kind instead of inferring it from the values.
// Integers are widened to float64 when the declared kind is KindFloat.
func WithKind(k Kind) ColumnOption {
	return func(o *columnOptions) {
		o.kind = &k
	}
}

// AllowEmpty marks empty cells of the column as exempt from every rule.
func AllowEmpty() ColumnOption {
	return func(o *columnOptions) {
		o.allowEmpty = true
	}
}

// NewColumn builds a column from Go scalars. Supported inputs are nil, bool,
// all integer and float types, string and time.Time.
func NewColumn(name string, values []any, opts ...ColumnOption) (*Column, error) {
	if name == "" {
		return nil, ErrEmptyColumnName
	}

	o := &columnOptions{}
	for _, opt := range opts {
		opt(o)
	}

	normalized := make([]any, len(values))
	seen := make(map[Kind]bool, 2)
	for i, v := range values {
		nv, k, ok, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		normalized[i] = nv
		if ok {
			seen[k] = true
		}
	}

	kind := resolveKind(seen)
	if o.kind != nil {
		declared := *o.kind
		if !declared.IsConcrete() {
			return nil, fmt.Errorf("column %q: %w: %s", name, ErrInvalidKind, declared)
		}
		if err := conform(normalized, declared); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		kind = declared
	}

	index, err := buildIndex(o.index, len(normalized))
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}

	return &Column{
		name:       name,
		kind:       kind,
		allowEmpty: o.allowEmpty,
		values:     normalized,
		index:      index,
	}, nil
}

func resolveKind(seen map[Kind]bool) Kind {
	switch len(seen) {
	case 1:
		for k := range seen {
			return k
		}
	case 2:
		if seen[KindInt] && seen[KindFloat] {
			return KindFloat
		}
	}
	return KindMixed
}

// conform checks values against a declared kind, widening ints for float columns.
func conform(values []any, kind Kind) error {
	if kind == KindMixed {
		return nil
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		_, k, _, _ := normalize(v)
		switch {
		case k == kind:
		case kind == KindFloat && k == KindInt:
			values[i] = float64(v.(int64))
		default:
			return fmt.Errorf("%w: row %d holds %s, want %s", ErrKindMismatch, i, k, kind)
		}
	}
	return nil
}

func buildIndex(keys []any, n int) ([]any, error) {
	if keys == nil {
		index := make([]any, n)
		for i := range index {
			index[i] = i
		}
		return index, nil
	}
	if len(keys) != n {
		return nil, fmt.Errorf("%w: %d keys for %d values", ErrIndexLength, len(keys), n)
	}
	index := make([]any, n)
	for i, k := range keys {
		if k == nil || !reflect.TypeOf(k).Comparable() {
			return nil, fmt.Errorf("%w at position %d: %#v", ErrInvalidIndexKey, i, k)
		}
		index[i] = k
	}
	return index, nil
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the element kind resolved when the column was built.
func (c *Column) Kind() Kind { return c.kind }

// AllowEmpty reports whether empty cells are exempt from rules.
func (c *Column) AllowEmpty() bool { return c.allowEmpty }

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.values) }

// Value returns the cell at position i.
func (c *Column) Value(i int) any { return c.values[i] }

// Key returns the row key at position i.
func (c *Column) Key(i int) any { return c.index[i] }

// Values returns a copy of the cells.
func (c *Column) Values() []any {
	out := make([]any, len(c.values))
	copy(out, c.values)
	return out
}

// Index returns a copy of the row keys.
func (c *Column) Index() []any {
	out := make([]any, len(c.index))
	copy(out, c.index)
	return out
}

// Strings returns every cell rendered with FormatValue.
func (c *Column) Strings() []string {
	out := make([]string, len(c.values))
	for i, v := range c.values {
		out[i] = FormatValue(v)
	}
	return out
}

// WithAllowEmpty returns a view of the column with the given empty-cell policy.
func (c *Column) WithAllowEmpty(allow bool) *Column {
	view := *c
	view.allowEmpty = allow
	return &view
}

// WithName returns a view of the column under another name.
func (c *Column) WithName(name string) *Column {
	view := *c
	view.name = name
	return &view
}
