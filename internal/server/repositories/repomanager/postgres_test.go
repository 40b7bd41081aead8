package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return db, mock
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func stubGoose(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		calls++
		assert.Equal(t, ".", dir)
		return err
	}
	t.Cleanup(func() { gooseUpContext = orig })
	return &calls
}

func TestNewPostgresRepositoryManager_PingsAndVendsCatalog(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()
	mock.ExpectPing()
	stubOpen(t, db, nil)

	m, err := NewPostgresRepositoryManager(context.Background(), "postgres://x")
	require.NoError(t, err)
	assert.NotNil(t, m.Catalog())
	assert.Same(t, db, m.Conn())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresRepositoryManager_PingError(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()
	stubOpen(t, db, nil)

	_, err := NewPostgresRepositoryManager(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "db ping error: refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresRepositoryManager_OpenError(t *testing.T) {
	stubOpen(t, nil, errors.New("bad dsn"))

	_, err := NewPostgresRepositoryManager(context.Background(), "::")
	assert.ErrorContains(t, err, "db open error: bad dsn")
}

func TestRunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	calls := stubGoose(t, nil)
	m := newPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
	assert.Equal(t, 1, *calls)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, errors.New("boom"))
	m := newPostgresRepositoryManager(db)
	assert.EqualError(t, m.RunMigrations(context.Background()), "boom")
}

func TestOpen_WithoutDSNIsInMemory(t *testing.T) {
	calls := stubGoose(t, nil)

	m, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, &InMemoryRepositoryManager{}, m)
	assert.Nil(t, m.Conn())
	assert.NotNil(t, m.Catalog())
	assert.NoError(t, m.Close())
	assert.Zero(t, *calls)
}

func TestOpen_MigrationFailureClosesConnection(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpen(t, db, nil)
	stubGoose(t, errors.New("boom"))

	_, err := Open(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "migration error: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}
