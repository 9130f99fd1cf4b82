package validation

import "errors"

// Configuration errors are returned by rule constructors and never become
// warnings.
var (
	ErrNilCallable    = errors.New("callable is nil")
	ErrNilPredicate   = errors.New("predicate is nil")
	ErrNilRule        = errors.New("rule is nil")
	ErrEmptyMessage   = errors.New("message is required")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrEmptyFormat    = errors.New("date format is empty")
	ErrInvalidKind    = errors.New("invalid kind")
)

// Data errors are returned while evaluating a rule against a column. They
// abort that evaluation instead of producing row-level warnings.
var (
	ErrMaskLength = errors.New("mask length does not match column length")
	ErrNilColumn  = errors.New("column is nil")
)
