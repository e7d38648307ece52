package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/agent"
	"github.com/Alijeyrad/nutriguard_backend/internal/events"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/alert"
	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/inventory"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/mealplan"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/notification"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/nutrition"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/safety"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/system"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
	"github.com/Alijeyrad/nutriguard_backend/pkg/email"
	"github.com/Alijeyrad/nutriguard_backend/pkg/sms"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvidePatientService,
		ProvideRecipeService,
		ProvideInventoryService,
		ProvideMealPlanService,
		ProvideNutritionService,
		ProvideSafetyService,
		ProvideAlertService,
		ProvideSystemService,
		ProvideFileService,
		ProvideNotificationService,
		ProvideAdvisorService,
	),
)

func ProvidePatientService(db *database.DB) patient.Service {
	return patient.New(db)
}

func ProvideRecipeService(db *database.DB) recipe.Service {
	return recipe.New(db)
}

func ProvideInventoryService(db *database.DB) inventory.Service {
	return inventory.New(db)
}

func ProvideMealPlanService(db *database.DB) mealplan.Service {
	return mealplan.New(db)
}

func ProvideNutritionService(db *database.DB, pub events.Publisher) nutrition.Service {
	return nutrition.New(db, pub)
}

func ProvideSafetyService(db *database.DB, pub events.Publisher) safety.Service {
	return safety.New(db, pub)
}

func ProvideAlertService(db *database.DB) alert.Service {
	return alert.New(db)
}

func ProvideSystemService(db *database.DB, cfg *config.Config) system.Service {
	return system.New(db, cfg.API)
}

func ProvideFileService(store svcfile.Storage) svcfile.Service {
	return svcfile.New(store)
}

func ProvideNotificationService(cfg *config.Config, mail *email.Client, texter *sms.Client) notification.Service {
	return notification.New(cfg.Notifications, cfg.API.Title, mail, texter)
}

func ProvideAdvisorService(db *database.DB, team *agent.Team) advisor.Service {
	return advisor.New(advisor.NewStore(db), advisor.FromTeam(team))
}
