package schema

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tableschema/pkg/logger"
	"github.com/dmitrymomot/tableschema/pkg/table"
	"github.com/dmitrymomot/tableschema/pkg/validation"
)

// Schema is an immutable list of column rules.
// It is safe for concurrent use.
type Schema struct {
	columns []Column
	ordered bool
}

// Option configures a Schema.
type Option func(*Schema)

// Ordered pairs schema columns with table columns by position instead of by
// name.
func Ordered() Option {
	return func(s *Schema) { s.ordered = true }
}

// New creates a schema. Column names must be non-empty and unique.
func New(columns []Column, opts ...Option) (*Schema, error) {
	s := &Schema{columns: make([]Column, len(columns))}
	seen := make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if err := c.check(); err != nil {
			return nil, err
		}
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}
		s.columns[i] = NewColumn(c.Name, c.Validations)
		s.columns[i].AllowEmpty = c.AllowEmpty
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Columns returns a copy of the schema columns.
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// Names returns the schema column names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// IsOrdered reports whether columns are paired by position.
func (s *Schema) IsOrdered() bool { return s.ordered }

// ValidateOption configures a single Validate call.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	only        []string
	concurrency int
	log         *slog.Logger
}

// Only restricts validation to the named schema columns. The column count
// check is skipped in that case.
func Only(names ...string) ValidateOption {
	return func(o *validateOptions) {
		o.only = append(o.only, names...)
	}
}

// WithConcurrency bounds how many columns are evaluated at once.
// Values below one are ignored.
func WithConcurrency(n int) ValidateOption {
	return func(o *validateOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger enables per-column debug logging.
func WithLogger(l *slog.Logger) ValidateOption {
	return func(o *validateOptions) {
		if l != nil {
			o.log = l
		}
	}
}

type pair struct {
	schema Column
	data   *table.Column
}

// Validate checks tbl against the schema and returns every warning, grouped
// by schema column in declaration order.
//
// A column count mismatch is reported as a single warning and nothing else is
// checked. Data errors from a rule stop the run and are returned.
func (s *Schema) Validate(ctx context.Context, tbl *table.Table, opts ...ValidateOption) ([]validation.Warning, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}
	o := &validateOptions{
		concurrency: runtime.GOMAXPROCS(0),
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	selected, err := s.selectColumns(o.only)
	if err != nil {
		return nil, err
	}

	if len(o.only) == 0 && tbl.Width() != len(s.columns) {
		return []validation.Warning{{
			Message: fmt.Sprintf("The data frame has %d columns, but the schema has %d columns", tbl.Width(), len(s.columns)),
		}}, nil
	}

	var warnings []validation.Warning
	pairs := make([]pair, 0, len(selected))
	for _, idx := range selected {
		c := s.columns[idx]
		col := s.lookup(tbl, idx)
		if col == nil {
			warnings = append(warnings, validation.Warning{
				Message: fmt.Sprintf("The column %s exists in the schema but not in the data frame", c.Name),
			})
			continue
		}
		pairs = append(pairs, pair{schema: c, data: col})
	}

	results := make([][]validation.Warning, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			ws, err := p.schema.Validate(p.data)
			if err != nil {
				return err
			}
			results[i] = ws
			o.log.DebugContext(gctx, "column validated",
				logger.Column(p.schema.Name),
				logger.Rows(p.data.Len()),
				logger.Warnings(len(ws)),
				logger.Duration(time.Since(start)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, ws := range results {
		warnings = append(warnings, ws...)
	}
	return warnings, nil
}

// selectColumns returns schema positions to validate, in schema order.
func (s *Schema) selectColumns(only []string) ([]int, error) {
	if len(only) == 0 {
		idx := make([]int, len(s.columns))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}

	want := make(map[string]struct{}, len(only))
	for _, name := range only {
		if !s.has(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		want[name] = struct{}{}
	}
	idx := make([]int, 0, len(want))
	for i, c := range s.columns {
		if _, ok := want[c.Name]; ok {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func (s *Schema) has(name string) bool {
	for _, c := range s.columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// lookup finds the table column paired with schema column idx, or nil.
func (s *Schema) lookup(tbl *table.Table, idx int) *table.Column {
	if s.ordered {
		if idx >= tbl.Width() {
			return nil
		}
		return tbl.ColumnAt(idx)
	}
	col, ok := tbl.Column(s.columns[idx].Name)
	if !ok {
		return nil
	}
	return col
}
