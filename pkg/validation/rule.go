package validation

import (
	"fmt"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// Validation is anything that can turn a column into warnings.
type Validation interface {
	Errors(col *table.Column) ([]Warning, error)
}

// Checker computes a per-cell mask for a column. It is the only thing a new
// mask-based rule has to implement; Rule supplies the message override and the
// warning engine.
type Checker interface {
	Validate(col *table.Column) (Mask, error)
	DefaultMessage() string
}

var (
	_ Validation = (*Rule)(nil)
	_ Checker    = (*Rule)(nil)
	_ Validation = (*KindRule)(nil)
)

// Option configures a rule at construction.
type Option func(*options)

type options struct {
	message    string
	name       string
	ignoreCase bool
	literal    bool
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithMessage replaces the rule's default message.
func WithMessage(msg string) Option {
	return func(o *options) {
		o.message = msg
	}
}

// WithName names the callable of a CanCall rule in its default message.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Rule is a mask-based validation. Rules are immutable; combinators wrap them.
type Rule struct {
	checker Checker
	message string
}

// NewRule wraps a Checker into a Rule.
func NewRule(c Checker, opts ...Option) *Rule {
	o := newOptions(opts)
	return &Rule{checker: c, message: o.message}
}

// Validate returns the rule's mask for the column. A mask whose length differs
// from the column is rejected with ErrMaskLength.
func (r *Rule) Validate(col *table.Column) (Mask, error) {
	if col == nil {
		return nil, ErrNilColumn
	}
	mask, err := r.checker.Validate(col)
	if err != nil {
		return nil, err
	}
	if len(mask) != col.Len() {
		return nil, fmt.Errorf("%w: column %q has %d rows, mask has %d", ErrMaskLength, col.Name(), col.Len(), len(mask))
	}
	return mask, nil
}

// DefaultMessage returns the message the rule reports when no override is set.
func (r *Rule) DefaultMessage() string {
	return r.checker.DefaultMessage()
}

// Message returns the override set with WithMessage, or the default message.
func (r *Rule) Message() string {
	if r.message != "" {
		return r.message
	}
	return r.DefaultMessage()
}

// Errors evaluates the rule and returns one warning per failing cell. When the
// column allows empty cells, empty values never fail. Evaluation errors are
// returned as-is and no warnings are produced.
func (r *Rule) Errors(col *table.Column) ([]Warning, error) {
	mask, err := r.Validate(col)
	if err != nil {
		return nil, err
	}

	var warnings []Warning
	message := r.Message()
	for i, ok := range mask {
		if ok {
			continue
		}
		value := col.Value(i)
		if col.AllowEmpty() && table.IsEmpty(value) {
			continue
		}
		warnings = append(warnings, Warning{
			Message: message,
			Value:   value,
			Row:     col.Key(i),
			Column:  col.Name(),
		})
	}
	return warnings, nil
}

// Must panics if err is non-nil. It is meant for rule tables built at init.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("validation: %v", err))
	}
	return v
}
