// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"

	"github.com/recetario/recetario/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
// Numeric fields stay raw so absent, null and string values can be told apart.
type CreateUserRequest struct {
	ID     json.RawMessage `json:"id"`
	Nombre string          `json:"nombre"`
	Email  string          `json:"email"`
	Edad   json.RawMessage `json:"edad"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
type CreateRecipeRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	UserID      json.RawMessage `json:"userId"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
type UpdateRecipeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateIngredientRequest represents the request body for adding an
// ingredient. Both recetaId and recipeId are accepted.
type CreateIngredientRequest struct {
	RecetaID string `json:"recetaId"`
	RecipeID string `json:"recipeId"`
	Nombre   string `json:"nombre"`
}

// Recipe returns the referenced recipe identifier, preferring recetaId.
func (r CreateIngredientRequest) Recipe() string {
	if r.RecetaID != "" {
		return r.RecetaID
	}
	return r.RecipeID
}

// MessageResponse is a plain acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error. Error carries the internal detail
// and is only set for server failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// UserCreatedResponse is returned by POST /api/usuarios.
type UserCreatedResponse struct {
	Message string      `json:"message"`
	Usuario *model.User `json:"usuario"`
}

// RecipeCreatedResponse is returned by POST /api/recetas.
type RecipeCreatedResponse struct {
	Message string        `json:"message"`
	Receta  *model.Recipe `json:"receta"`
}

// IngredientCreatedResponse is returned by POST /api/ingredientes.
type IngredientCreatedResponse struct {
	Message     string            `json:"message"`
	Ingrediente *model.Ingredient `json:"ingrediente"`
}
