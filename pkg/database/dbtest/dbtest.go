// Package dbtest wires go-sqlmock behind a *database.DB for service tests.
package dbtest

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

const Schema = "nutriguard"

var searchPath = regexp.QuoteMeta(`SET LOCAL search_path TO "` + Schema + `"`)

// New returns a DB backed by sqlmock. Expectations are checked on cleanup.
func New(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return database.NewFromSQL(conn, Schema), mock
}

// ExpectUnit expects the opening statements of one unit of work.
func ExpectUnit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(searchPath).WillReturnResult(sqlmock.NewResult(0, 0))
}
