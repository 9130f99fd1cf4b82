package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// Querier runs a query. *pgxpool.Pool, *pgx.Conn and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadTable runs sql and materializes the result set as a table. Column names
// come from the result set; NULL becomes nil, numerics become float64,
// timestamps and dates become time.Time and uuids become their string form.
func LoadTable(ctx context.Context, q Querier, sql string, args ...any) (*table.Table, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, ErrEmptyQuery
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Join(ErrFailedToQuery, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	values := make([][]any, len(fields))
	for rows.Next() {
		raw, err := rows.Values()
		if err != nil {
			return nil, errors.Join(ErrFailedToRead, err)
		}
		for i := range fields {
			v, err := cellValue(raw[i])
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", fields[i].Name, err)
			}
			values[i] = append(values[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}

	columns := make([]*table.Column, len(fields))
	for i, f := range fields {
		col, err := table.NewColumn(f.Name, values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
		columns[i] = col
	}
	return table.New(columns...)
}

// cellValue maps a value decoded by pgx onto the scalar set a table column
// accepts.
func cellValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, time.Time,
		int16, int32, int64, int8, int, float32, float64:
		return x, nil
	case []byte:
		return string(x), nil
	case [16]byte:
		return uuid.UUID(x).String(), nil
	case pgtype.Numeric:
		return numericValue(x)
	case *pgtype.Numeric:
		if x == nil {
			return nil, nil
		}
		return numericValue(*x)
	case pgtype.Text:
		if !x.Valid {
			return nil, nil
		}
		return x.String, nil
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedRow, err)
		}
		return string(b), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedRow, v)
}

func numericValue(n pgtype.Numeric) (any, error) {
	if !n.Valid || n.NaN {
		return nil, nil
	}
	f, err := n.Float64Value()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRow, err)
	}
	return f.Float64, nil
}
