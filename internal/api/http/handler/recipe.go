package handler

import (
	"errors"
	"maps"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
)

type RecipeHandler struct {
	svc     recipe.Service
	advisor advisor.Service
	files   svcfile.Service
}

func NewRecipeHandler(svc recipe.Service, adv advisor.Service, files svcfile.Service) *RecipeHandler {
	return &RecipeHandler{svc: svc, advisor: adv, files: files}
}

func mapRecipeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, recipe.ErrRecipeNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, recipe.ErrNameRequired):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /recipes
func (h *RecipeHandler) Create(c fiber.Ctx) error {
	var req recipe.CreateRecipeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	r, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapRecipeError(c, err)
	}
	return created(c, fiber.Map{"message": "Recipe created", "recipe": r})
}

// GET /recipes/search?keyword=&max_calories=
func (h *RecipeHandler) Search(c fiber.Ctx) error {
	maxCalories, valid := queryFloat(c, "max_calories")
	if !valid {
		return badRequest(c, "invalid max_calories")
	}

	recipes, err := h.svc.Search(c.Context(), recipe.SearchRequest{
		Keyword:     c.Query("keyword"),
		MaxCalories: maxCalories,
	})
	if err != nil {
		return mapRecipeError(c, err)
	}
	return ok(c, fiber.Map{"count": len(recipes), "recipes": recipes})
}

// GET /recipes/:id
func (h *RecipeHandler) Get(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid recipe id")
	}

	r, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapRecipeError(c, err)
	}
	return ok(c, r)
}

// POST /recipes/:id/modify
func (h *RecipeHandler) Modify(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid recipe id")
	}

	var body struct {
		DietaryRequirements []string `json:"dietary_requirements"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.DietaryRequirements == nil {
		body.DietaryRequirements = []string{}
	}

	r, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapRecipeError(c, err)
	}

	res := h.advisor.ModifyRecipe(c.Context(), r, body.DietaryRequirements, nil)

	out := fiber.Map{
		"original_recipe":      r,
		"dietary_requirements": body.DietaryRequirements,
	}
	maps.Copy(out, res.Payload())
	return ok(c, out)
}

// POST /recipes/:id/image
// Multipart upload; stores the object key as image_url.
func (h *RecipeHandler) UploadImage(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid recipe id")
	}
	if !h.files.Enabled() {
		return unavailable(c, svcfile.ErrStorageDisabled.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	if _, err := h.svc.Get(c.Context(), id); err != nil {
		return mapRecipeError(c, err)
	}

	uploaded, err := h.files.Upload(c.Context(), svcfile.EntityRecipes, fh)
	if err != nil {
		return mapFileError(c, err)
	}

	r, err := h.svc.SetImage(c.Context(), id, uploaded.Key)
	if err != nil {
		return mapRecipeError(c, err)
	}
	return ok(c, fiber.Map{"recipe": r, "image": uploaded})
}
