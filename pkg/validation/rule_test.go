package validation_test

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tableschema/pkg/table"
	"github.com/dmitrymomot/tableschema/pkg/validation"
)

func TestWarning_String(t *testing.T) {
	t.Parallel()

	t.Run("cell warning", func(t *testing.T) {
		t.Parallel()
		w := validation.Warning{Message: "bad", Value: 5, Row: 2, Column: "Age"}
		assert.Equal(t, `{row: 2, column: "Age"}: "5" bad`, w.String())
		assert.True(t, w.IsCell())
	})

	t.Run("message only when row missing", func(t *testing.T) {
		t.Parallel()
		w := validation.Warning{Message: "bad", Value: 5, Column: "Age"}
		assert.Equal(t, "bad", w.String())
	})

	t.Run("empty cell keeps its position", func(t *testing.T) {
		t.Parallel()
		w := validation.Warning{Message: "bad", Row: 1, Column: "Age"}
		assert.True(t, w.IsCell())
		assert.Equal(t, `{row: 1, column: "Age"}: "" bad`, w.String())
	})

	t.Run("message only when column missing", func(t *testing.T) {
		t.Parallel()
		w := validation.Warning{Message: "bad", Value: 5, Row: 1}
		assert.False(t, w.IsCell())
		assert.Equal(t, "bad", w.String())
	})

	t.Run("string row keys", func(t *testing.T) {
		t.Parallel()
		w := validation.Warning{Message: "bad", Value: "x", Row: "r-7", Column: "Name"}
		assert.Equal(t, `{row: r-7, column: "Name"}: "x" bad`, w.String())
	})
}

func TestWarning_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		warning validation.Warning
		want    string
	}{
		{
			name:    "cell",
			warning: validation.Warning{Message: "bad", Value: 5, Row: 2, Column: "Age"},
			want:    `{"message":"bad","value":5,"row":2,"column":"Age"}`,
		},
		{
			name:    "positive infinity",
			warning: validation.Warning{Message: "bad", Value: math.Inf(1), Row: 1, Column: "x"},
			want:    `{"message":"bad","value":"inf","row":1,"column":"x"}`,
		},
		{
			name:    "negative infinity",
			warning: validation.Warning{Message: "bad", Value: math.Inf(-1), Row: 1, Column: "x"},
			want:    `{"message":"bad","value":"-inf","row":1,"column":"x"}`,
		},
		{
			name:    "nan row key",
			warning: validation.Warning{Message: "bad", Value: "v", Row: math.NaN(), Column: "x"},
			want:    `{"message":"bad","value":"v","row":"nan","column":"x"}`,
		},
		{
			name:    "column level",
			warning: validation.Warning{Message: "bad"},
			want:    `{"message":"bad"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := json.Marshal(tt.warning)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	ws := validation.Warnings{
		{Message: "a", Value: 1, Row: 0, Column: "x"},
		{Message: "column level"},
		{Message: "b", Value: 2, Row: 1, Column: "y"},
		{Message: "c", Value: 3, Row: 2, Column: "x"},
	}

	assert.Equal(t, []string{"x", "y"}, ws.Columns())
	assert.Len(t, ws.ForColumn("x"), 2)
	assert.Equal(t, "column level", ws.Strings()[1])
}

func TestMask(t *testing.T) {
	t.Parallel()

	a := validation.Mask{true, true, false, false}
	b := validation.Mask{true, false, true, false}

	assert.Equal(t, validation.Mask{false, false, true, true}, a.Not())

	and, err := a.And(b)
	require.NoError(t, err)
	assert.Equal(t, validation.Mask{true, false, false, false}, and)

	or, err := a.Or(b)
	require.NoError(t, err)
	assert.Equal(t, validation.Mask{true, true, true, false}, or)

	_, err = a.And(validation.Mask{true})
	assert.ErrorIs(t, err, validation.ErrMaskLength)

	assert.Equal(t, []int{2, 3}, a.Failing())
	assert.Equal(t, validation.Mask{true, true}, validation.NewMask(2, true))
}

func TestRule_Errors(t *testing.T) {
	t.Parallel()

	t.Run("reports failing cells with provenance", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Age", []any{5, 15, -3})

		ws, err := validation.InRange(0, 10).Errors(col)
		require.NoError(t, err)
		require.Len(t, ws, 2)

		assert.Equal(t, validation.Warning{Message: "was not in the range [0, 10)", Value: int64(15), Row: 1, Column: "Age"}, ws[0])
		assert.Equal(t, validation.Warning{Message: "was not in the range [0, 10)", Value: int64(-3), Row: 2, Column: "Age"}, ws[1])
	})

	t.Run("keeps sparse row keys", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Age", []any{5, 15, 7}, table.WithIndex([]any{10, 20, 30}))

		ws, err := validation.InRange(0, 10).Errors(col)
		require.NoError(t, err)
		assert.Equal(t, []any{20}, failingRows(ws))
	})

	t.Run("allow empty skips empty cells", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Age", []any{"", "5", nil, "20"}, table.AllowEmpty())

		ws, err := validation.InRange(0, 10).Errors(col)
		require.NoError(t, err)
		assert.Equal(t, []any{3}, failingRows(ws))
	})

	t.Run("without allow empty, empty cells are reported", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Age", []any{"", "5", nil, "20"})

		ws, err := validation.InRange(0, 10).Errors(col)
		require.NoError(t, err)
		assert.Equal(t, []any{0, 2, 3}, failingRows(ws))
		assert.Equal(t, `{row: 0, column: "Age"}: "" was not in the range [0, 10)`, ws[0].String())
		assert.Equal(t, `{row: 2, column: "Age"}: "" was not in the range [0, 10)`, ws[1].String())
	})

	t.Run("allow empty exempts empty cells even for negated rules", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Name", []any{"", "x"}, table.AllowEmpty())

		ws, err := validation.Not(validation.InList([]string{""})).Errors(col)
		require.NoError(t, err)
		assert.Empty(t, ws)
	})

	t.Run("data errors propagate", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Age", []any{-1, 5, 10, "x"})

		ws, err := validation.InRange(0, 10).Errors(col)
		assert.ErrorIs(t, err, table.ErrNotNumeric)
		assert.Nil(t, ws)
	})

	t.Run("custom message overrides default", func(t *testing.T) {
		t.Parallel()
		col := newColumn(t, "Age", []any{50})
		rule := validation.InRange(0, 10, validation.WithMessage("is too old"))

		ws, err := rule.Errors(col)
		require.NoError(t, err)
		require.Len(t, ws, 1)
		assert.Equal(t, "is too old", ws[0].Message)
		assert.Equal(t, "was not in the range [0, 10)", rule.DefaultMessage())
	})

	t.Run("nil column", func(t *testing.T) {
		t.Parallel()
		_, err := validation.InRange(0, 1).Errors(nil)
		assert.ErrorIs(t, err, validation.ErrNilColumn)
	})

	t.Run("passing column yields no warnings", func(t *testing.T) {
		t.Parallel()
		ws, err := validation.InRange(0, 10).Errors(newColumn(t, "Age", []any{1, 2}))
		require.NoError(t, err)
		assert.Empty(t, ws)
	})
}

func TestMaskLengthMatchesColumn(t *testing.T) {
	t.Parallel()

	col := newColumn(t, "Mixed", []any{"a ", " b", "c", "", nil, "2020-01-01", 3, 4.5})
	rules := map[string]*validation.Rule{
		"pattern":   validation.Must(validation.MatchesPattern(`\d`)),
		"leading":   validation.LeadingWhitespace(),
		"trailing":  validation.TrailingWhitespace(),
		"in list":   validation.InList([]string{"c"}),
		"date":      validation.Must(validation.DateFormat("%Y-%m-%d")),
		"convert":   validation.Must(validation.CanConvert(table.KindFloat)),
		"negated":   validation.Not(validation.LeadingWhitespace()),
		"combined":  validation.And(validation.LeadingWhitespace(), validation.TrailingWhitespace()),
		"disjoined": validation.Or(validation.InList([]string{"c"}), validation.LeadingWhitespace()),
		"all of":    validation.AllOf(validation.LeadingWhitespace(), validation.TrailingWhitespace(), validation.InList([]string{"c"})),
		"any of":    validation.AnyOf(validation.LeadingWhitespace()),
		"custom el": validation.Must(validation.CustomElement(func(v any) bool { return v != nil }, "is null")),
		"can call":  validation.Must(validation.CanCall(func(any) error { return nil })),
	}

	for name, rule := range rules {
		mask, err := rule.Validate(col)
		require.NoError(t, err, name)
		assert.Len(t, mask, col.Len(), name)
	}
}
