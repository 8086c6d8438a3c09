// query_test.go
package pgtable_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantpool/pgtable"
	"github.com/quantpool/pgtable/test/mocks"
)

// fakeRows implements pgx.Rows over in-memory data
type fakeRows struct {
	fields  []pgconn.FieldDescription
	values  [][]any
	index   int
	iterErr error
	closed  bool
}

func (r *fakeRows) Close()     { r.closed = true }
func (r *fakeRows) Err() error { return r.iterErr }

func (r *fakeRows) Next() bool {
	if r.index < len(r.values) {
		r.index++
		return true
	}
	return false
}

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.index-1], nil
}

func (r *fakeRows) Scan(dest ...any) error        { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return r.fields
}

func barFields() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{
		{Name: "symbol"},
		{Name: "close"},
	}
}

func TestQueryTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	rows := &fakeRows{
		fields: barFields(),
		values: [][]any{
			{"AAPL", 187.44},
			{"MSFT", 412.10},
		},
	}

	query := "SELECT symbol, close FROM bars WHERE volume > $1"
	querier.EXPECT().
		Query(gomock.Any(), query, int64(1000)).
		Return(rows, nil)

	tbl, err := pgtable.QueryTable(context.Background(), querier, query, int64(1000))
	require.NoError(t, err)

	assert.Equal(t, []string{"symbol", "close"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []any{"AAPL", 187.44}, tbl.Row(0))
	assert.Equal(t, []any{"MSFT", 412.10}, tbl.Row(1))
	assert.True(t, rows.closed, "result set must be closed")
}

func TestQueryTable_ZeroRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	rows := &fakeRows{fields: barFields()}
	querier.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(rows, nil)

	tbl, err := pgtable.QueryTable(context.Background(), querier, "SELECT symbol, close FROM bars")
	require.NoError(t, err)

	// Zero rows discards the declared column names.
	assert.True(t, tbl.IsEmpty())
	assert.Zero(t, tbl.NumCols())
	assert.True(t, rows.closed)
}

func TestQueryTable_QueryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("relation does not exist"))

	_, err := pgtable.QueryTable(context.Background(), querier, "SELECT * FROM missing")
	assert.ErrorContains(t, err, "relation does not exist")
}

func TestQueryTable_IterationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	rows := &fakeRows{
		fields:  barFields(),
		values:  [][]any{{"AAPL", 187.44}},
		iterErr: errors.New("connection reset"),
	}
	querier.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(rows, nil)

	_, err := pgtable.QueryTable(context.Background(), querier, "SELECT symbol, close FROM bars")

	assert.ErrorContains(t, err, "connection reset")
	assert.True(t, rows.closed, "result set must be closed on the error path")
}

func TestQueryTable_NormalizesValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	id := uuid.New()
	rows := &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "id"}, {Name: "close"}},
		values: [][]any{
			{[16]byte(id), pgtype.Numeric{Int: big.NewInt(18744), Exp: -2, Valid: true}},
		},
	}
	querier.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(rows, nil)

	tbl, err := pgtable.QueryTable(context.Background(), querier, "SELECT id, close FROM bars")
	require.NoError(t, err)

	got, ok := tbl.Value(0, "id")
	require.True(t, ok)
	assert.Equal(t, id, got)

	closeVal, ok := tbl.Value(0, "close")
	require.True(t, ok)
	d, ok := closeVal.(decimal.Decimal)
	require.True(t, ok, "expected decimal.Decimal, got %T", closeVal)
	assert.True(t, d.Equal(decimal.RequireFromString("187.44")))
}
