package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tableschema/pkg/table"
	"github.com/dmitrymomot/tableschema/pkg/validation"
)

func newColumn(t *testing.T, name string, values []any, opts ...table.ColumnOption) *table.Column {
	t.Helper()
	col, err := table.NewColumn(name, values, opts...)
	require.NoError(t, err)
	return col
}

func failingRows(ws []validation.Warning) []any {
	rows := make([]any, 0, len(ws))
	for _, w := range ws {
		rows = append(rows, w.Row)
	}
	return rows
}
