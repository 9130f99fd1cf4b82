package validation

import (
	"fmt"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// KindRule checks the element kind of a column as a whole. It reports at most
// one warning and that warning carries no row, column or value.
type KindRule struct {
	kind    table.Kind
	message string
}

// IsKind checks that the column's kind is kind or a sub-kind of it, so
// IsKind(table.KindNumber) accepts int and float columns.
func IsKind(kind table.Kind, opts ...Option) (*KindRule, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	o := newOptions(opts)
	return &KindRule{kind: kind, message: o.message}, nil
}

// Kind returns the required kind.
func (r *KindRule) Kind() table.Kind { return r.kind }

// Errors implements Validation.
func (r *KindRule) Errors(col *table.Column) ([]Warning, error) {
	if col == nil {
		return nil, ErrNilColumn
	}
	if col.Kind().IsSubKindOf(r.kind) {
		return nil, nil
	}
	msg := r.message
	if msg == "" {
		msg = fmt.Sprintf("The column has a dtype of %s which is not a subclass of the required type %s", col.Kind(), r.kind)
	}
	return []Warning{{Message: msg}}, nil
}
