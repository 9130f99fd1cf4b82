package report_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tableschema/pkg/report"
	"github.com/dmitrymomot/tableschema/pkg/validation"
)

func sampleResult() report.Result {
	return report.Result{
		RunID:   "run-1",
		Source:  "people.csv",
		Rows:    5,
		Columns: 2,
		Warnings: []validation.Warning{
			{Message: "bad", Value: 5, Row: 2, Column: "Age"},
			{Message: "The column has a dtype of string which is not a subclass of the required type number"},
		},
	}
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	t.Run("warnings and summary", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, sampleResult(), report.FormatText))
		assert.Equal(t, `{row: 2, column: "Age"}: "5" bad
The column has a dtype of string which is not a subclass of the required type number
people.csv: 5 rows, 2 columns, 2 warnings
`, buf.String())
	})

	t.Run("clean run", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		r := report.Result{Source: "people.csv", Rows: 1, Columns: 1}
		require.NoError(t, report.Write(&buf, r, report.FormatText))
		assert.Equal(t, "people.csv: 1 rows, 1 columns, 0 warnings\n", buf.String())
		assert.True(t, r.Valid())
	})
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes result", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, sampleResult(), report.FormatJSON))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "run-1", got["run_id"])
		assert.Equal(t, false, got["valid"])
		assert.Equal(t, float64(5), got["rows"])

		ws, ok := got["warnings"].([]any)
		require.True(t, ok)
		require.Len(t, ws, 2)
		first := ws[0].(map[string]any)
		assert.Equal(t, "Age", first["column"])
		assert.Equal(t, float64(2), first["row"])
		second := ws[1].(map[string]any)
		assert.NotContains(t, second, "row")
		assert.NotContains(t, second, "column")
	})

	t.Run("non-finite values", func(t *testing.T) {
		t.Parallel()
		r := report.Result{
			Source: "x.csv",
			Rows:   2,
			Warnings: []validation.Warning{
				{Message: "was not in the range [0, 10)", Value: math.Inf(1), Row: 1, Column: "x"},
				{Message: "was not in the range [0, 10)", Value: math.Inf(-1), Row: 2, Column: "x"},
			},
		}
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, r, report.FormatJSON))

		var got struct {
			Warnings []struct {
				Value string `json:"value"`
			} `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Warnings, 2)
		assert.Equal(t, "inf", got.Warnings[0].Value)
		assert.Equal(t, "-inf", got.Warnings[1].Value)
	})

	t.Run("empty warnings encode as a list", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, report.Write(&buf, report.Result{Source: "x"}, report.FormatJSON))
		assert.Contains(t, buf.String(), `"warnings": []`)
		assert.Contains(t, buf.String(), `"valid": true`)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_Errors(t *testing.T) {
	t.Parallel()

	err := report.Write(&bytes.Buffer{}, sampleResult(), report.Format("xml"))
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)

	err = report.Write(failingWriter{}, sampleResult(), report.FormatText)
	assert.ErrorIs(t, err, report.ErrFailedToWrite)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	_, err = report.ParseFormat("yaml")
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}
