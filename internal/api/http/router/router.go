package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/alert"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/inventory"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/mealplan"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/nutrition"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/safety"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/system"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg          *config.Config
	DB           *database.DB
	Redis        *redis.Client `optional:"true"`
	PatientSvc   patient.Service
	RecipeSvc    recipe.Service
	InventorySvc inventory.Service
	MealPlanSvc  mealplan.Service
	NutritionSvc nutrition.Service
	SafetySvc    safety.Service
	AlertSvc     alert.Service
	SystemSvc    system.Service
	FileSvc      file.Service
	AdvisorSvc   advisor.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Probes & Metrics
	r.registerProbeRoutes(app)

	// 2. Initialize Handlers
	systemH := handler.NewSystemHandler(r.p.SystemSvc)
	patientH := handler.NewPatientHandler(r.p.PatientSvc, r.p.MealPlanSvc, r.p.FileSvc)
	recipeH := handler.NewRecipeHandler(r.p.RecipeSvc, r.p.AdvisorSvc, r.p.FileSvc)
	inventoryH := handler.NewInventoryHandler(r.p.InventorySvc)
	mealPlanH := handler.NewMealPlanHandler(r.p.MealPlanSvc, r.p.PatientSvc, r.p.AdvisorSvc, r.p.FileSvc)
	safetyH := handler.NewSafetyHandler(r.p.SafetySvc)
	nutritionH := handler.NewNutritionHandler(r.p.NutritionSvc, r.p.AdvisorSvc)
	alertH := handler.NewAlertHandler(r.p.AlertSvc)
	aiH := handler.NewAIHandler(r.p.AdvisorSvc, r.p.PatientSvc, r.p.RecipeSvc, r.p.InventorySvc)
	fileH := handler.NewFileHandler(r.p.FileSvc)

	// 3. Delegate to sub-files
	r.registerSystemRoutes(app, systemH)
	r.registerPatientRoutes(app, patientH)
	r.registerRecipeRoutes(app, recipeH)
	r.registerInventoryRoutes(app, inventoryH)
	r.registerMealPlanRoutes(app, mealPlanH)
	r.registerSafetyRoutes(app, safetyH)
	r.registerNutritionRoutes(app, nutritionH)
	r.registerAlertRoutes(app, alertH)
	r.registerAIRoutes(app, aiH)
	r.registerFileRoutes(app, fileH)
}

func (r *Router) registerProbeRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: r.ready,
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// ready reports whether Postgres, and Redis when configured, answer a ping.
func (r *Router) ready(c fiber.Ctx) bool {
	if err := r.p.DB.Ping(c.Context()); err != nil {
		return false
	}
	if r.p.Redis != nil {
		if err := r.p.Redis.Ping(c.Context()).Err(); err != nil {
			return false
		}
	}
	return true
}
