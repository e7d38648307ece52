package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchPath = regexp.QuoteMeta(`SET LOCAL search_path TO "nutriguard"`)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewFromSQL(conn, "nutriguard"), mock
}

func TestUnit_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(searchPath).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE patients").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Unit(context.Background(), func(q Querier) error {
		_, err := q.ExecContext(context.Background(), "UPDATE patients SET name = $1", "A")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnit_RollsBackAndReturnsOriginalError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(searchPath).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := db.Unit(context.Background(), func(q Querier) error {
		return boom
	})

	assert.Same(t, boom, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnit_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(searchPath).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = db.Unit(context.Background(), func(q Querier) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnit_SearchPathFailureAborts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(searchPath).WillReturnError(errors.New("no such schema"))
	mock.ExpectRollback()

	called := false
	err := db.Unit(context.Background(), func(q Querier) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "set search_path")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnit_ReleasesConnection(t *testing.T) {
	db, mock := newMockDB(t)

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(searchPath).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Unit(context.Background(), func(q Querier) error { return nil }))
	}

	assert.Equal(t, 0, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password = "secret"
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=nutriguard sslmode=disable",
		cfg.DSN(),
	)
}
