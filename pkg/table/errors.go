package table

import "errors"

var (
	// Construction errors
	ErrUnsupportedValue = errors.New("unsupported cell value")
	ErrIndexLength      = errors.New("index length does not match column length")
	ErrInvalidIndexKey  = errors.New("invalid index key")
	ErrKindMismatch     = errors.New("value does not match column kind")
	ErrLengthMismatch   = errors.New("columns have different lengths")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrEmptyColumnName  = errors.New("column name is empty")

	// Conversion errors, returned as data errors by rules that coerce cells
	ErrNotNumeric  = errors.New("value cannot be parsed as a number")
	ErrConversion  = errors.New("value cannot be converted")
	ErrInvalidKind = errors.New("invalid kind")

	// CSV errors
	ErrMissingHeader      = errors.New("csv input has no header row")
	ErrIndexColumnMissing = errors.New("index column not found in csv header")
	ErrFailedToReadCSV    = errors.New("failed to read csv")
)
