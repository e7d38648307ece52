package patient

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/pkg/database/dbtest"
)

var patientCols = []string{"id", "name", "age", "gender", "medical_conditions", "dietary_restrictions",
	"admission_date", "photo_url", "created_at", "updated_at"}

func patientRow(id int64, restrictions any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(patientCols).
		AddRow(id, "Asha", 62, "F", "Type 2 diabetes", restrictions, nil, nil, now, now)
}

func TestCreate(t *testing.T) {
	db, mock := dbtest.New(t)
	age := 62

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`INSERT INTO patients`).
		WithArgs("Asha", &age, nil, nil, nil, nil, nil).
		WillReturnRows(patientRow(1, nil))
	mock.ExpectCommit()

	p, err := New(db).Create(context.Background(), CreatePatientRequest{Name: "Asha", Age: &age})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, 62, *p.Age)
	assert.Nil(t, p.DietaryRestrictions)
}

func TestCreate_RequiresName(t *testing.T) {
	db, _ := dbtest.New(t)

	_, err := New(db).Create(context.Background(), CreatePatientRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestGet(t *testing.T) {
	t.Run("found twice yields the same record", func(t *testing.T) {
		db, mock := dbtest.New(t)
		for range 2 {
			dbtest.ExpectUnit(mock)
			mock.ExpectQuery(`SELECT .* FROM patients WHERE id = \$1`).
				WithArgs(int64(1)).
				WillReturnRows(patientRow(1, "Low sodium"))
			mock.ExpectCommit()
		}

		svc := New(db)
		first, err := svc.Get(context.Background(), 1)
		require.NoError(t, err)
		second, err := svc.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`SELECT .* FROM patients`).WillReturnRows(sqlmock.NewRows(patientCols))
		mock.ExpectRollback()

		_, err := New(db).Get(context.Background(), 404)
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestUpdateDietaryRestrictions(t *testing.T) {
	t.Run("updates", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`UPDATE patients\s+SET dietary_restrictions = \$1, updated_at = NOW\(\)`).
			WithArgs("Gluten free", int64(1)).
			WillReturnRows(patientRow(1, "Gluten free"))
		mock.ExpectCommit()

		p, err := New(db).UpdateDietaryRestrictions(context.Background(), 1, "Gluten free")
		require.NoError(t, err)
		assert.Equal(t, "Gluten free", *p.DietaryRestrictions)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`UPDATE patients`).WillReturnRows(sqlmock.NewRows(patientCols))
		mock.ExpectRollback()

		_, err := New(db).UpdateDietaryRestrictions(context.Background(), 2, "x")
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestNutritionHistory(t *testing.T) {
	db, mock := dbtest.New(t)
	now := time.Now()

	cols := []string{"id", "patient_id", "recipe_id", "recorded_by", "date", "intake_percentage",
		"blood_sugar", "notes", "created_at", "recipe_name", "total_calories", "recorded_by_name"}

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`FROM nutrition_entries ne\s+LEFT JOIN recipes r .* CURRENT_DATE - \$2::int`).
		WithArgs(int64(1), 7).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 1, 4, 2, now, 80.0, 130.0, nil, now, "Dal", 250.0, "Nurse Joy"))
	mock.ExpectCommit()

	entries, err := New(db).NutritionHistory(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Dal", *entries[0].RecipeName)
	assert.Equal(t, 250.0, *entries[0].TotalCalories)
	assert.Equal(t, "Nurse Joy", *entries[0].RecordedByName)
}
