package pg

import (
	"errors"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use PG_CONN_URL env var")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")

	ErrEmptyQuery     = errors.New("query is empty")
	ErrFailedToQuery  = errors.New("failed to run query")
	ErrFailedToRead   = errors.New("failed to read query results")
	ErrUnsupportedRow = errors.New("unsupported column value")
)
