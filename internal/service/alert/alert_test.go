package alert

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database/dbtest"
)

var alertCols = []string{"id", "type", "message", "triggered_by", "status", "created_at", "resolved_at"}

func TestList_FiltersByStatus(t *testing.T) {
	db, mock := dbtest.New(t)
	now := time.Now()

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`SELECT .* FROM alerts WHERE 1=1 AND status = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("Active", 50).
		WillReturnRows(sqlmock.NewRows(alertCols).
			AddRow(2, "Low Intake", "Patient 1 consumed less than 50% of meal", nil, "Active", now, nil).
			AddRow(1, "Safety Violation", "Failed inspection in Kitchen", 3, "Active", now, nil))
	mock.ExpectCommit()

	status := repo.AlertActive
	alerts, err := New(db).List(context.Background(), &status)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Low Intake", alerts[0].Type)
	assert.Equal(t, int64(3), *alerts[1].TriggeredBy)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	db, mock := dbtest.New(t)

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`SELECT .* FROM alerts WHERE 1=1 ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(alertCols))
	mock.ExpectCommit()

	alerts, err := New(db).List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestResolve(t *testing.T) {
	t.Run("resolves", func(t *testing.T) {
		db, mock := dbtest.New(t)
		now := time.Now()

		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`UPDATE alerts`).
			WithArgs("Resolved", int64(9)).
			WillReturnRows(sqlmock.NewRows(alertCols).
				AddRow(9, "Low Intake", "m", nil, "Resolved", now, now))
		mock.ExpectCommit()

		a, err := New(db).Resolve(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, repo.AlertResolved, a.Status)
		assert.NotNil(t, a.ResolvedAt)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := dbtest.New(t)

		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`UPDATE alerts`).WillReturnRows(sqlmock.NewRows(alertCols))
		mock.ExpectRollback()

		_, err := New(db).Resolve(context.Background(), 9)
		assert.ErrorIs(t, err, ErrAlertNotFound)
	})
}
