package pg_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tableschema/pkg/pg"
	"github.com/dmitrymomot/tableschema/pkg/table"
)

type fakeRows struct {
	fields []string
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) Scan(...any) error             { return errors.New("not supported") }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.fields))
	for i, name := range r.fields {
		out[i] = pgconn.FieldDescription{Name: name}
	}
	return out
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
	sql  string
	args []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestLoadTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("converts rows into columns", func(t *testing.T) {
		t.Parallel()
		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		id := [16]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
		rows := &fakeRows{
			fields: []string{"id", "email", "age", "balance", "created_at", "ref", "meta"},
			data: [][]any{
				{int32(1), "ann@example.com", int16(30), pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}, created, id, map[string]any{"vip": true}},
				{int32(2), nil, nil, pgtype.Numeric{}, created, id, nil},
			},
		}
		q := &fakeQuerier{rows: rows}

		tbl, err := pg.LoadTable(ctx, q, "SELECT * FROM customers WHERE region = $1", "eu")
		require.NoError(t, err)
		assert.Equal(t, []any{"eu"}, q.args)
		assert.True(t, rows.closed)

		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, []string{"id", "email", "age", "balance", "created_at", "ref", "meta"}, tbl.Names())

		idCol, _ := tbl.Column("id")
		assert.Equal(t, table.KindInt, idCol.Kind())
		assert.Equal(t, []any{int64(1), int64(2)}, idCol.Values())

		email, _ := tbl.Column("email")
		assert.Equal(t, table.KindString, email.Kind())
		assert.Nil(t, email.Value(1))

		balance, _ := tbl.Column("balance")
		assert.Equal(t, table.KindFloat, balance.Kind())
		assert.InDelta(t, 12.5, balance.Value(0), 1e-9)
		assert.Nil(t, balance.Value(1))

		createdCol, _ := tbl.Column("created_at")
		assert.Equal(t, table.KindDate, createdCol.Kind())

		ref, _ := tbl.Column("ref")
		assert.Equal(t, "12345678-9abc-def0-1234-56789abcdef0", ref.Value(0))

		meta, _ := tbl.Column("meta")
		assert.Equal(t, `{"vip":true}`, meta.Value(0))
	})

	t.Run("empty result set", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{rows: &fakeRows{fields: []string{"id"}}}
		tbl, err := pg.LoadTable(ctx, q, "SELECT id FROM customers")
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, []string{"id"}, tbl.Names())
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()
		_, err := pg.LoadTable(ctx, &fakeQuerier{}, "  ")
		assert.ErrorIs(t, err, pg.ErrEmptyQuery)
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("relation does not exist")
		_, err := pg.LoadTable(ctx, &fakeQuerier{err: cause}, "SELECT 1")
		assert.ErrorIs(t, err, pg.ErrFailedToQuery)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("rows error", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{rows: &fakeRows{fields: []string{"id"}, err: errors.New("conn reset")}}
		_, err := pg.LoadTable(ctx, q, "SELECT id FROM customers")
		assert.ErrorIs(t, err, pg.ErrFailedToRead)
	})

	t.Run("unsupported value", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{rows: &fakeRows{
			fields: []string{"span"},
			data:   [][]any{{struct{ A int }{1}}},
		}}
		_, err := pg.LoadTable(ctx, q, "SELECT span FROM t")
		assert.ErrorIs(t, err, pg.ErrUnsupportedRow)
		assert.Contains(t, err.Error(), `column "span"`)
	})

	t.Run("duplicate column names", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{rows: &fakeRows{
			fields: []string{"id", "id"},
			data:   [][]any{{int64(1), int64(2)}},
		}}
		_, err := pg.LoadTable(ctx, q, "SELECT a.id, b.id FROM a, b")
		assert.ErrorIs(t, err, table.ErrDuplicateColumn)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty connection string", func(t *testing.T) {
		t.Parallel()
		_, err := pg.Connect(context.Background(), pg.Config{}, nil)
		assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	})

	t.Run("invalid connection string", func(t *testing.T) {
		t.Parallel()
		_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"}, nil)
		assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	})
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pg.Healthcheck(fakePinger{})(context.Background()))

	cause := errors.New("connection refused")
	err := pg.Healthcheck(fakePinger{err: cause})(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
	assert.ErrorIs(t, err, cause)
}
