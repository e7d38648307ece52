package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/alert"
	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/mealplan"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/nutrition"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/system"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakePatients struct {
	patient.Service
	byID map[int64]*repo.Patient
}

func (f *fakePatients) Get(_ context.Context, id int64) (*repo.Patient, error) {
	if p, found := f.byID[id]; found {
		return p, nil
	}
	return nil, patient.ErrPatientNotFound
}

func (f *fakePatients) Create(_ context.Context, req patient.CreatePatientRequest) (*repo.Patient, error) {
	if req.Name == "" {
		return nil, patient.ErrNameRequired
	}
	return &repo.Patient{ID: 1, Name: req.Name}, nil
}

type fakeMealPlans struct {
	mealplan.Service
	cards   []mealplan.MealCard
	current *repo.MealPlan
	added   *mealplan.AddRecipeRequest
	created *mealplan.CreateMealPlanRequest
}

func (f *fakeMealPlans) Current(context.Context, int64) (*repo.MealPlan, error) {
	return f.current, nil
}

func (f *fakeMealPlans) AddRecipe(_ context.Context, planID int64, req mealplan.AddRecipeRequest) (*repo.MealPlanRecipe, error) {
	f.added = &req
	return &repo.MealPlanRecipe{ID: 5, MealPlanID: planID, RecipeID: req.RecipeID, MealType: req.MealType}, nil
}

func (f *fakeMealPlans) Create(_ context.Context, req mealplan.CreateMealPlanRequest) (*repo.MealPlan, error) {
	f.created = &req
	return &repo.MealPlan{ID: 3, PatientID: req.PatientID, StartDate: req.StartDate, EndDate: req.EndDate, AIGenerated: true}, nil
}

func (f *fakeMealPlans) MealCards(context.Context, int64) ([]mealplan.MealCard, error) {
	return f.cards, nil
}

func (f *fakeMealPlans) Update(context.Context, int64, mealplan.UpdateMealPlanRequest) (*repo.MealPlan, error) {
	return nil, mealplan.ErrNoFieldsToUpdate
}

type fakeAdvisor struct {
	advisor.Service
	days int
}

func (f *fakeAdvisor) RecommendMeals(_ context.Context, _ *repo.Patient, _ []repo.Recipe, _ string, days int) advisor.Result {
	f.days = days
	return advisor.Result{Status: advisor.StatusOK, Data: map[string]any{"plan_summary": "balanced"}}
}

type fakeFiles struct {
	svcfile.Service
	enabled bool
}

func (f fakeFiles) Enabled() bool { return f.enabled }

func (f fakeFiles) DownloadURL(_ context.Context, key string) (string, error) {
	return "https://bucket.example/signed/" + key, nil
}

type fakeAlerts struct {
	alert.Service
	status *repo.AlertStatus
}

func (f *fakeAlerts) List(_ context.Context, status *repo.AlertStatus) ([]repo.Alert, error) {
	f.status = status
	return []repo.Alert{{ID: 1, Type: "Low Intake", Status: repo.AlertActive}}, nil
}

func (f *fakeAlerts) Resolve(context.Context, int64) (*repo.Alert, error) {
	return nil, alert.ErrAlertNotFound
}

type fakeNutrition struct {
	nutrition.Service
}

func (fakeNutrition) Analytics(context.Context, int64, int) (*nutrition.Analytics, error) {
	return nil, nil
}

type fakeSystem struct {
	system.Service
	stats error
}

func (fakeSystem) Health(context.Context) system.Health {
	return system.Health{Status: "unhealthy", Database: "disconnected", Error: "dial tcp: refused", Timestamp: time.Now()}
}

func (f fakeSystem) Stats(context.Context) (*system.Stats, error) {
	return nil, f.stats
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, isMap := body["data"].(map[string]any)
	require.True(t, isMap, "expected data envelope, got %v", body)
	return d
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestPatientHandler(t *testing.T) {
	plans := &fakeMealPlans{}
	h := NewPatientHandler(&fakePatients{byID: map[int64]*repo.Patient{7: {ID: 7, Name: "Ada"}}}, plans, fakeFiles{})
	app := fiber.New()
	app.Post("/patients", h.Create)
	app.Get("/patients/:id", h.Get)
	app.Get("/patients/:id/meal-plan", h.CurrentMealPlan)
	app.Post("/patients/:id/photo", h.UploadPhoto)

	t.Run("create", func(t *testing.T) {
		code, body := do(t, app, http.MethodPost, "/patients", `{"name":"Ada"}`)
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, "Patient registered successfully", data(t, body)["message"])
	})

	t.Run("create without name", func(t *testing.T) {
		code, body := do(t, app, http.MethodPost, "/patients", `{}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "name is required", body["error"])
	})

	t.Run("get missing", func(t *testing.T) {
		code, body := do(t, app, http.MethodGet, "/patients/99", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Patient not found", body["error"])
	})

	t.Run("get invalid id", func(t *testing.T) {
		code, _ := do(t, app, http.MethodGet, "/patients/abc", "")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("no active plan", func(t *testing.T) {
		code, body := do(t, app, http.MethodGet, "/patients/7/meal-plan", "")
		assert.Equal(t, http.StatusOK, code)
		d := data(t, body)
		assert.Equal(t, "No active meal plan found", d["message"])
		assert.Nil(t, d["meal_plan"])
	})

	t.Run("photo with storage disabled", func(t *testing.T) {
		code, _ := do(t, app, http.MethodPost, "/patients/7/photo", "")
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})
}

func TestMealPlanHandler_AddRecipe(t *testing.T) {
	plans := &fakeMealPlans{}
	h := NewMealPlanHandler(plans, &fakePatients{}, &fakeAdvisor{}, fakeFiles{})
	app := fiber.New()
	app.Post("/meal-plans/:id/recipes", h.AddRecipe)

	code, body := do(t, app, http.MethodPost, "/meal-plans/1/recipes?recipe_id=4&meal_type=Brunch", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid meal type. Must be one of: Breakfast, Lunch, Dinner, Snack", body["error"])

	code, body = do(t, app, http.MethodPost, "/meal-plans/1/recipes", `{"recipe_id":4,"meal_type":"Lunch","portion_size":"1 cup"}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Recipe added to meal plan successfully", data(t, body)["message"])
	require.NotNil(t, plans.added)
	assert.Equal(t, repo.Lunch, plans.added.MealType)
	assert.Equal(t, "1 cup", *plans.added.PortionSize)
}

func TestMealPlanHandler_Generate(t *testing.T) {
	plans := &fakeMealPlans{}
	adv := &fakeAdvisor{}
	h := NewMealPlanHandler(plans, &fakePatients{byID: map[int64]*repo.Patient{2: {ID: 2, Name: "Bo"}}}, adv, fakeFiles{})
	app := fiber.New()
	app.Post("/meal-plans/generate", h.Generate)

	code, _ := do(t, app, http.MethodPost, "/meal-plans/generate?patient_id=9", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := do(t, app, http.MethodPost, "/meal-plans/generate?patient_id=2&days=3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, adv.days)

	require.NotNil(t, plans.created)
	assert.True(t, plans.created.AIGenerated)
	assert.Equal(t, plans.created.StartDate.AddDays(3), plans.created.EndDate)
	assert.Equal(t, mealplan.GeneratedNote, *plans.created.Notes)

	recs := data(t, body)["ai_recommendations"].(map[string]any)
	assert.Equal(t, "ok", recs["result_status"])
}

func TestMealPlanHandler_MealCardsPresignsObjectKeys(t *testing.T) {
	plans := &fakeMealPlans{cards: []mealplan.MealCard{
		{RecipeID: 4, ImageURL: "https://placeholder.com/meal-4.jpg"},
		{RecipeID: 5, ImageURL: "recipes/5f1c.jpg"},
	}}
	app := fiber.New()

	h := NewMealPlanHandler(plans, &fakePatients{}, &fakeAdvisor{}, fakeFiles{enabled: true})
	app.Post("/meal-plans/:id/images", h.MealCards)

	code, body := do(t, app, http.MethodPost, "/meal-plans/3/images", "")
	require.Equal(t, http.StatusOK, code)
	cards := data(t, body)["meal_cards"].([]any)
	require.Len(t, cards, 2)
	assert.Equal(t, "https://placeholder.com/meal-4.jpg", cards[0].(map[string]any)["image_url"])
	assert.Equal(t, "https://bucket.example/signed/recipes/5f1c.jpg", cards[1].(map[string]any)["image_url"])
}

func TestMealPlanHandler_UpdateNoFields(t *testing.T) {
	h := NewMealPlanHandler(&fakeMealPlans{}, &fakePatients{}, &fakeAdvisor{}, fakeFiles{})
	app := fiber.New()
	app.Put("/meal-plans/:id", h.Update)

	code, body := do(t, app, http.MethodPut, "/meal-plans/1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No fields to update", body["error"])

	code, _ = do(t, app, http.MethodPut, "/meal-plans/1?start_date=not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAlertHandler(t *testing.T) {
	alerts := &fakeAlerts{}
	h := NewAlertHandler(alerts)
	app := fiber.New()
	app.Get("/alerts/dietary-violations", h.DietaryViolations)
	app.Post("/alerts/:id/resolve", h.Resolve)

	code, body := do(t, app, http.MethodGet, "/alerts/dietary-violations?status=Open", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "Must be one of: Active, Resolved")

	code, body = do(t, app, http.MethodGet, "/alerts/dietary-violations?status=Active", "")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, data(t, body)["count"])
	require.NotNil(t, alerts.status)
	assert.Equal(t, repo.AlertActive, *alerts.status)

	code, _ = do(t, app, http.MethodPost, "/alerts/3/resolve", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNutritionHandler_AnalyticsNoData(t *testing.T) {
	h := NewNutritionHandler(fakeNutrition{}, &fakeAdvisor{})
	app := fiber.New()
	app.Get("/nutrition/analytics/:patient_id", h.Analytics)

	code, body := do(t, app, http.MethodGet, "/nutrition/analytics/4", "")
	assert.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Equal(t, "No nutrition data available", d["message"])
	assert.EqualValues(t, 4, d["patient_id"])
}

func TestAIHandler_RecommendMeals(t *testing.T) {
	conditions := "Diabetes"
	adv := &fakeAdvisor{}
	h := NewAIHandler(adv, &fakePatients{byID: map[int64]*repo.Patient{1: {ID: 1, Name: "Ada", MedicalConditions: &conditions}}}, nil, nil)
	app := fiber.New()
	app.Post("/ai/recommend-meals", h.RecommendMeals)

	code, body := do(t, app, http.MethodPost, "/ai/recommend-meals", `{"patient_id":1}`)
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)

	assert.Equal(t, 1, adv.days)
	assert.Equal(t, "balanced", d["plan_summary"])
	assert.Equal(t, "Diabetes", d["patient_profile"].(map[string]any)["medical_conditions"])
	assert.Len(t, d["personalization_factors"], 3)

	code, _ = do(t, app, http.MethodPost, "/ai/recommend-meals", `{"patient_id":2}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSystemHandler(t *testing.T) {
	app := fiber.New()
	h := NewSystemHandler(fakeSystem{stats: errors.New("relation \"patients\" does not exist")})
	app.Get("/health", h.Health)
	app.Get("/stats", h.Stats)

	code, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Equal(t, "unhealthy", d["status"])
	assert.Equal(t, "dial tcp: refused", d["error"])

	code, body = do(t, app, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, `relation "patients" does not exist`, body["error"])
}

func TestFileHandler_Disabled(t *testing.T) {
	app := fiber.New()
	h := NewFileHandler(fakeFiles{})
	app.Post("/files", h.Upload)

	code, body := do(t, app, http.MethodPost, "/files", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, svcfile.ErrStorageDisabled.Error(), body["error"])
}
