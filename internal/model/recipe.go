package model

import "time"

// Recipe belongs to a user through the user's client-assigned ID, not the
// user's store identifier.
type Recipe struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      float64   `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecipeDetail is a recipe joined with its ingredients.
type RecipeDetail struct {
	Recipe
	Ingredientes []Ingredient `json:"ingredientes"`
}
