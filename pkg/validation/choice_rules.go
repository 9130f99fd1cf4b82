package validation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

type listChecker struct {
	options    []string
	allowed    map[string]bool
	ignoreCase bool
}

// InList checks that every cell, rendered as a string, is one of options.
// With IgnoreCase both sides are Unicode case-folded before comparison.
func InList(options []string, opts ...Option) *Rule {
	o := newOptions(opts)
	c := listChecker{
		options:    append([]string(nil), options...),
		allowed:    make(map[string]bool, len(options)),
		ignoreCase: o.ignoreCase,
	}
	fold := c.folder()
	for _, opt := range options {
		c.allowed[fold(opt)] = true
	}
	return NewRule(c, opts...)
}

// folder returns the normalization applied to both options and cells. A
// cases.Caser keeps state, so each evaluation gets its own.
func (c listChecker) folder() func(string) string {
	if !c.ignoreCase {
		return func(s string) string { return s }
	}
	caser := cases.Fold()
	return caser.String
}

func (c listChecker) Validate(col *table.Column) (Mask, error) {
	fold := c.folder()
	return ElementwiseString(col, func(s string) bool {
		return c.allowed[fold(s)]
	}), nil
}

func (c listChecker) DefaultMessage() string {
	return fmt.Sprintf("is not in the list of legal options (%s)", strings.Join(c.options, ", "))
}
