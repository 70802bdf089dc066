package dbx

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPsql_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Psql.Select("id").From("memos").Where(sq.Eq{"is_secret": false}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM memos WHERE is_secret = $1", query)
	assert.Equal(t, []any{false}, args)
}

func TestQueryAll_ScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v FROM t ORDER BY v")).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("a").AddRow("b"))

	got, err := QueryAll(context.Background(), db, Psql.Select("v").From("t").OrderBy("v"),
		func(r *sql.Rows) (string, error) {
			var s string
			err := r.Scan(&s)
			return s, err
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryAll_EmptyIsNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT v FROM t").WillReturnRows(sqlmock.NewRows([]string{"v"}))

	got, err := QueryAll(context.Background(), db, Psql.Select("v").From("t"),
		func(r *sql.Rows) (string, error) { return "", nil })
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQueryAll_PropagatesErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT v FROM t").WillReturnError(errors.New("boom"))

	_, err = QueryAll(context.Background(), db, Psql.Select("v").From("t"),
		func(r *sql.Rows) (string, error) { return "", nil })
	require.EqualError(t, err, "boom")

	_, err = QueryAll(context.Background(), db, Psql.Select(), func(r *sql.Rows) (string, error) { return "", nil })
	require.Error(t, err, "select without columns must fail to render")
}

func TestExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM t WHERE id = $1")).
		WithArgs("x").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := Exec(context.Background(), db, Psql.Delete("t").Where(sq.Eq{"id": "x"}))
	require.NoError(t, err)
	n, _ := res.RowsAffected()
	assert.Equal(t, int64(1), n)
}
