package mealplan

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database/dbtest"
)

var (
	planCols       = []string{"id", "patient_id", "created_by", "start_date", "end_date", "ai_generated", "notes", "created_at", "updated_at"}
	planRecipeCols = []string{"id", "meal_plan_id", "recipe_id", "meal_type", "portion_size", "created_at",
		"name", "description", "total_calories", "image_url"}
)

func TestCreate(t *testing.T) {
	db, mock := dbtest.New(t)
	start := repo.NewDate(2025, 3, 10)
	end := start.AddDays(7)
	note := GeneratedNote
	now := time.Now()

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`INSERT INTO meal_plans`).
		WithArgs(int64(1), "2025-03-10", "2025-03-17", true, note, nil).
		WillReturnRows(sqlmock.NewRows(planCols).AddRow(3, 1, nil, start.Time, end.Time, true, note, now, now))
	mock.ExpectCommit()

	mp, err := New(db).Create(context.Background(), CreateMealPlanRequest{
		PatientID: 1, StartDate: start, EndDate: end, AIGenerated: true, Notes: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), mp.ID)
	assert.Equal(t, "2025-03-17", mp.EndDate.String())
}

func TestCreate_RejectsInvertedRange(t *testing.T) {
	db, _ := dbtest.New(t)
	start := repo.NewDate(2025, 3, 10)

	_, err := New(db).Create(context.Background(), CreateMealPlanRequest{StartDate: start, EndDate: start.AddDays(-1)})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGet_OrdersRecipesByMealType(t *testing.T) {
	db, mock := dbtest.New(t)
	now := time.Now()

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`FROM meal_plans mp\s+LEFT JOIN staff s .*LEFT JOIN patients p`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(append(planCols, "created_by_name", "patient_name")).
			AddRow(3, 1, 2, now, now, false, nil, now, now, "Dr. Rao", "Asha"))
	mock.ExpectQuery(`ORDER BY CASE mpr.meal_type`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(planRecipeCols).
			AddRow(10, 3, 4, "Breakfast", "1 bowl", now, "Poha", nil, 300.0, nil).
			AddRow(11, 3, 5, "Dinner", nil, now, "Dal", "Lentils", 250.0, "https://img/dal.jpg"))
	mock.ExpectCommit()

	mp, err := New(db).Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rao", *mp.CreatedByName)
	assert.Equal(t, "Asha", *mp.PatientName)
	require.Len(t, mp.Recipes, 2)
	assert.Equal(t, repo.Breakfast, mp.Recipes[0].MealType)
	assert.Equal(t, "Dal", *mp.Recipes[1].RecipeName)
}

func TestGet_NotFound(t *testing.T) {
	db, mock := dbtest.New(t)

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`FROM meal_plans mp`).WillReturnRows(sqlmock.NewRows(append(planCols, "a", "b")))
	mock.ExpectRollback()

	_, err := New(db).Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMealPlanNotFound)
}

func TestAddRecipe(t *testing.T) {
	portion := "1 cup"

	t.Run("invalid meal type", func(t *testing.T) {
		db, _ := dbtest.New(t)
		_, err := New(db).AddRecipe(context.Background(), 1, AddRecipeRequest{RecipeID: 2, MealType: "Brunch"})
		assert.ErrorIs(t, err, repo.ErrInvalidMealType)
	})

	t.Run("missing plan is checked first", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`SELECT id FROM meal_plans WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := New(db).AddRecipe(context.Background(), 1, AddRecipeRequest{RecipeID: 2, MealType: repo.Lunch})
		assert.ErrorIs(t, err, ErrMealPlanNotFound)
	})

	t.Run("missing recipe", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`SELECT id FROM meal_plans`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`SELECT id FROM recipes WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := New(db).AddRecipe(context.Background(), 1, AddRecipeRequest{RecipeID: 2, MealType: repo.Lunch})
		assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
	})

	t.Run("inserts", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`SELECT id FROM meal_plans`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`SELECT id FROM recipes`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectQuery(`INSERT INTO meal_plan_recipes`).
			WithArgs(int64(1), int64(2), "Lunch", portion).
			WillReturnRows(sqlmock.NewRows(planRecipeCols[:6]).AddRow(7, 1, 2, "Lunch", portion, time.Now()))
		mock.ExpectCommit()

		r, err := New(db).AddRecipe(context.Background(), 1, AddRecipeRequest{RecipeID: 2, MealType: repo.Lunch, PortionSize: &portion})
		require.NoError(t, err)
		assert.Equal(t, int64(7), r.ID)
		assert.Equal(t, repo.Lunch, r.MealType)
	})
}

func TestRemoveRecipe_Missing(t *testing.T) {
	db, mock := dbtest.New(t)

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`DELETE FROM meal_plan_recipes`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := New(db).RemoveRecipe(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrMealPlanRecipeNotFound)
}

func TestUpdate(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		db, _ := dbtest.New(t)
		_, err := New(db).Update(context.Background(), 1, UpdateMealPlanRequest{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("notes only", func(t *testing.T) {
		db, mock := dbtest.New(t)
		now := time.Now()
		notes := "Reduce rice"

		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`UPDATE meal_plans SET notes = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(notes, int64(4)).
			WillReturnRows(sqlmock.NewRows(planCols).AddRow(4, 1, nil, now, now, false, notes, now, now))
		mock.ExpectCommit()

		mp, err := New(db).Update(context.Background(), 4, UpdateMealPlanRequest{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, *mp.Notes)
	})
}

func TestDelete(t *testing.T) {
	db, mock := dbtest.New(t)

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`DELETE FROM meal_plans WHERE id = \$1 RETURNING id`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	id, err := New(db).Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestCurrent_NoneIsNil(t *testing.T) {
	db, mock := dbtest.New(t)

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`mp.start_date <= CURRENT_DATE`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(append(planCols, "created_by_name")))
	mock.ExpectCommit()

	mp, err := New(db).Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, mp)
}

func TestHistory_IncludesRecipeCount(t *testing.T) {
	db, mock := dbtest.New(t)
	now := time.Now()

	dbtest.ExpectUnit(mock)
	mock.ExpectQuery(`COUNT\(mpr.id\).*LIMIT \$2`).
		WithArgs(int64(1), 10).
		WillReturnRows(sqlmock.NewRows(append(planCols, "created_by_name", "recipe_count")).
			AddRow(4, 1, nil, now, now, true, nil, now, now, nil, 3))
	mock.ExpectCommit()

	plans, err := New(db).History(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 3, *plans[0].RecipeCount)
}

func TestMealCards(t *testing.T) {
	t.Run("placeholder image", func(t *testing.T) {
		db, mock := dbtest.New(t)
		now := time.Now()

		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`FROM meal_plan_recipes mpr`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(planRecipeCols).
				AddRow(10, 3, 4, "Breakfast", nil, now, "Poha", nil, 300.0, nil).
				AddRow(11, 3, 5, "Dinner", nil, now, "Dal", nil, 250.0, "https://img/dal.jpg"))
		mock.ExpectCommit()

		cards, err := New(db).MealCards(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "https://placeholder.com/meal-4.jpg", cards[0].ImageURL)
		assert.Equal(t, "https://img/dal.jpg", cards[1].ImageURL)
		assert.True(t, cards[0].CardGenerated)
	})

	t.Run("empty plan", func(t *testing.T) {
		db, mock := dbtest.New(t)
		dbtest.ExpectUnit(mock)
		mock.ExpectQuery(`FROM meal_plan_recipes mpr`).WillReturnRows(sqlmock.NewRows(planRecipeCols))
		mock.ExpectCommit()

		_, err := New(db).MealCards(context.Background(), 3)
		assert.ErrorIs(t, err, ErrNoMealCards)
	})
}
