package schema

import "errors"

var (
	// Configuration errors
	ErrEmptyColumnName = errors.New("schema column name is empty")
	ErrDuplicateColumn = errors.New("duplicate schema column")
	ErrNilValidation   = errors.New("schema column has a nil validation")
	ErrUnknownColumn   = errors.New("column is not part of the schema")
	ErrNilTable        = errors.New("table is nil")

	// Schema file errors
	ErrUnsupportedFormat   = errors.New("unsupported schema format")
	ErrInvalidSchema       = errors.New("invalid schema definition")
	ErrUnknownRule         = errors.New("unknown rule")
	ErrDuplicateRule       = errors.New("rule name already registered")
	ErrFailedToReadSchema  = errors.New("failed to read schema")
	ErrFailedToParseSchema = errors.New("failed to parse schema")
)
