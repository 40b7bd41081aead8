package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM vocabulary").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, "DELETE FROM vocabulary")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, func(ctx context.Context, q Querier) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, func(ctx context.Context, q Querier) error {
			panic("kaput")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginAndCommitErrors(t *testing.T) {
	t.Run("begin", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		err := WithTx(context.Background(), db, func(ctx context.Context, q Querier) error {
			t.Fatal("fn must not run")
			return nil
		})
		require.ErrorContains(t, err, "begin tx")
	})

	t.Run("commit", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err := WithTx(context.Background(), db, func(ctx context.Context, q Querier) error {
			return nil
		})
		require.ErrorContains(t, err, "commit tx")
	})
}

func scanName(rows *sql.Rows) (string, error) {
	var s string
	err := rows.Scan(&s)
	return s, err
}

func TestQueryAll(t *testing.T) {
	t.Run("collects rows", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("SELECT project_id FROM projects").
			WillReturnRows(sqlmock.NewRows([]string{"project_id"}).AddRow("a").AddRow("b"))

		got, err := QueryAll(context.Background(), db, scanName, "SELECT project_id FROM projects")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("SELECT project_id FROM projects").
			WillReturnRows(sqlmock.NewRows([]string{"project_id"}))

		got, err := QueryAll(context.Background(), db, scanName, "SELECT project_id FROM projects")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("SELECT").WillReturnError(errors.New("down"))

		_, err := QueryAll(context.Background(), db, scanName, "SELECT project_id FROM projects")
		require.ErrorContains(t, err, "db error")
	})

	t.Run("row error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows([]string{"project_id"}).AddRow("a").RowError(0, errors.New("broken")))

		_, err := QueryAll(context.Background(), db, scanName, "SELECT project_id FROM projects")
		require.ErrorContains(t, err, "db error")
	})
}
