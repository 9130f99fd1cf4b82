package validation

import (
	"fmt"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

type notChecker struct {
	inner *Rule
}

// Not returns a rule that passes exactly where r fails. Its default message is
// r's message followed by " <negated>".
func Not(r *Rule, opts ...Option) *Rule {
	mustRule(r)
	return NewRule(notChecker{inner: r}, opts...)
}

func (c notChecker) Validate(col *table.Column) (Mask, error) {
	m, err := c.inner.Validate(col)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

func (c notChecker) DefaultMessage() string {
	return c.inner.Message() + " <negated>"
}

type combinedChecker struct {
	a, b   *Rule
	symbol string
	op     func(a, b Mask) (Mask, error)
}

// And returns a rule that passes where both a and b pass. Both rules are
// always evaluated over the whole column.
func And(a, b *Rule, opts ...Option) *Rule {
	return combine(a, b, "&", Mask.And, opts)
}

// Or returns a rule that passes where a or b passes. Both rules are always
// evaluated over the whole column.
func Or(a, b *Rule, opts ...Option) *Rule {
	return combine(a, b, "|", Mask.Or, opts)
}

func combine(a, b *Rule, symbol string, op func(a, b Mask) (Mask, error), opts []Option) *Rule {
	mustRule(a)
	mustRule(b)
	return NewRule(combinedChecker{a: a, b: b, symbol: symbol, op: op}, opts...)
}

func (c combinedChecker) Validate(col *table.Column) (Mask, error) {
	ma, err := c.a.Validate(col)
	if err != nil {
		return nil, err
	}
	mb, err := c.b.Validate(col)
	if err != nil {
		return nil, err
	}
	return c.op(ma, mb)
}

func (c combinedChecker) DefaultMessage() string {
	return fmt.Sprintf("(%s) %s (%s)", c.a.Message(), c.symbol, c.b.Message())
}

// AllOf folds And over the rules from left to right.
func AllOf(first *Rule, rest ...*Rule) *Rule {
	acc := mustRule(first)
	for _, r := range rest {
		acc = And(acc, r)
	}
	return acc
}

// AnyOf folds Or over the rules from left to right.
func AnyOf(first *Rule, rest ...*Rule) *Rule {
	acc := mustRule(first)
	for _, r := range rest {
		acc = Or(acc, r)
	}
	return acc
}

// mustRule panics on nil; composing a nil rule is a programming error.
func mustRule(r *Rule) *Rule {
	if r == nil {
		panic(ErrNilRule)
	}
	return r
}
