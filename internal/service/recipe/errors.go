package recipe

import "errors"

var (
	ErrRecipeNotFound = errors.New("Recipe not found")
	ErrNameRequired   = errors.New("name is required")
)
