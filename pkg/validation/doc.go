// Package validation is the rule engine that checks table columns and reports
// every failing cell as a Warning.
//
// A rule is expressed once, as a Checker that computes a Mask (one pass/fail
// flag per cell), and Rule applies it to a whole column:
//
//  1. compute the mask with Validate;
//  2. drop empty cells when the column allows them;
//  3. emit a Warning with the rule message, the value, its row key and the
//     column name for every remaining failure.
//
// Whole-column checks such as IsKind implement Validation directly and report
// at most one message-only warning.
//
// # Composition
//
// Not, And and Or build new rules out of existing ones without touching them,
// so they nest freely:
//
//	age := validation.Or(
//		validation.Not(validation.InRange(0, 18)),
//		validation.InList([]string{"minor-ok"}),
//	)
//
// Both sides of And/Or are always evaluated over the full column.
//
// # Errors
//
// Constructors return configuration errors (ErrNilCallable, ErrInvalidKind,
// ErrInvalidPattern, ...). Evaluating a rule may return a data error, for
// example table.ErrNotNumeric from InRange on text; such errors abort the
// evaluation and are never turned into warnings. The exception is CanCall and
// CanConvert, whose per-cell errors and panics only fail that cell.
//
// # Extension
//
// CustomElement and CustomSeries wrap user predicates. For anything more
// involved, implement Checker and wrap it with NewRule.
//
// Rules keep no state between calls and never modify the column, so the same
// rule can be evaluated against many columns concurrently.
package validation
