package model

import "time"

// Ingredient belongs to a recipe through the recipe's store identifier.
type Ingredient struct {
	ID        string    `json:"_id,omitempty"`
	RecipeID  string    `json:"recetaId"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"createdAt"`
}
