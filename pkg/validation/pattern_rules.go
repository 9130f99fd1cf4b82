package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/grafana/regexp"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// IgnoreCase makes MatchesPattern and InList compare case-insensitively.
func IgnoreCase() Option {
	return func(o *options) {
		o.ignoreCase = true
	}
}

// Literal makes MatchesPattern treat the pattern as plain text.
func Literal() Option {
	return func(o *options) {
		o.literal = true
	}
}

type patternChecker struct {
	pattern string
	re      *regexp.Regexp
}

// MatchesPattern checks that the pattern matches somewhere in every cell.
func MatchesPattern(pattern string, opts ...Option) (*Rule, error) {
	o := newOptions(opts)
	expr := pattern
	if o.literal {
		expr = regexp.QuoteMeta(expr)
	}
	if o.ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return NewRule(patternChecker{pattern: pattern, re: re}, opts...), nil
}

func (c patternChecker) Validate(col *table.Column) (Mask, error) {
	return ElementwiseString(col, c.re.MatchString), nil
}

func (c patternChecker) DefaultMessage() string {
	return fmt.Sprintf("does not match the pattern \"%s\"", c.pattern)
}

type trailingWhitespaceChecker struct{}

// TrailingWhitespace checks that no cell ends in whitespace.
func TrailingWhitespace(opts ...Option) *Rule {
	return NewRule(trailingWhitespaceChecker{}, opts...)
}

func (trailingWhitespaceChecker) Validate(col *table.Column) (Mask, error) {
	return ElementwiseString(col, func(s string) bool {
		return strings.TrimRightFunc(s, unicode.IsSpace) == s
	}), nil
}

func (trailingWhitespaceChecker) DefaultMessage() string {
	return "contains trailing whitespace"
}

type leadingWhitespaceChecker struct{}

// LeadingWhitespace checks that no cell starts with whitespace.
func LeadingWhitespace(opts ...Option) *Rule {
	return NewRule(leadingWhitespaceChecker{}, opts...)
}

func (leadingWhitespaceChecker) Validate(col *table.Column) (Mask, error) {
	return ElementwiseString(col, func(s string) bool {
		return strings.TrimLeftFunc(s, unicode.IsSpace) == s
	}), nil
}

func (leadingWhitespaceChecker) DefaultMessage() string {
	return "contains leading whitespace"
}
