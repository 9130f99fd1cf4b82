package report

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrFailedToWrite     = errors.New("failed to write report")
)
