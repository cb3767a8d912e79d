package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/store"
)

// RecipeService handles recipe business logic.
type RecipeService struct {
	recipes     store.Collection
	users       store.Collection
	ingredients *IngredientService
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewRecipeService creates a new RecipeService. Ingredient listing and the
// delete cascade go through ingredients.
func NewRecipeService(st store.Store, ingredients *IngredientService, recorder metrics.Recorder, logger *slog.Logger) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		recipes:     st.Collection(store.Recipes),
		users:       st.Collection(store.Users),
		ingredients: ingredients,
		metrics:     recorder,
		logger:      logger,
	}
}

// CreateRecipeInput defines input for creating a recipe.
// UserID is the owner's client-assigned id; nil means it was not provided.
type CreateRecipeInput struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required"`
	UserID      *float64 `validate:"required"`
}

// Create stores a new recipe owned by an existing user.
func (s *RecipeService) Create(ctx context.Context, input CreateRecipeInput) (*model.Recipe, error) {
	if !present(input) {
		return nil, missing("Faltan campos: title, description, userId")
	}

	userID := *input.UserID
	if !finite(userID) {
		return nil, notFound("Usuario (userId) no encontrado")
	}

	if _, err := s.users.FindOne(ctx, store.Where(store.Eq("id", userID))); err != nil {
		if isNoDocuments(err) {
			return nil, notFound("Usuario (userId) no encontrado")
		}
		return nil, storeFailure("find user", err)
	}

	recipe := &model.Recipe{
		Title:       input.Title,
		Description: input.Description,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	doc, err := store.Encode(recipe)
	if err != nil {
		return nil, storeFailure("encode recipe", err)
	}

	id, err := s.recipes.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeFailure("insert recipe", err)
	}
	recipe.ID = id

	s.metrics.IncCreated(metrics.EntityRecipe)

	return recipe, nil
}

// List returns every recipe.
func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	return s.find(ctx, store.All)
}

// Get returns a recipe together with its ingredients.
func (s *RecipeService) Get(ctx context.Context, id string) (*model.RecipeDetail, error) {
	recipeID, err := store.ParseID(id)
	if err != nil {
		return nil, invalid("id inválido")
	}

	doc, err := s.recipes.FindOne(ctx, store.Where(store.ByID(recipeID)))
	if err != nil {
		if isNoDocuments(err) {
			return nil, notFound("Receta no encontrada")
		}
		return nil, storeFailure("find recipe", err)
	}

	detail := &model.RecipeDetail{}
	if err := store.Decode(doc, &detail.Recipe); err != nil {
		return nil, storeFailure("decode recipe", err)
	}

	detail.Ingredientes, err = s.ingredients.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// UpdateRecipeInput defines the editable recipe fields. Empty values are
// left untouched.
type UpdateRecipeInput struct {
	Title       string
	Description string
}

// Update applies the non-empty fields of input to a recipe.
func (s *RecipeService) Update(ctx context.Context, id string, input UpdateRecipeInput) error {
	recipeID, err := store.ParseID(id)
	if err != nil {
		return invalid("id inválido")
	}

	set := store.Document{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(set) == 0 {
		return missing("No hay campos para actualizar")
	}

	matched, err := s.recipes.UpdateOne(ctx, store.Where(store.ByID(recipeID)), set)
	if err != nil {
		return storeFailure("update recipe", err)
	}
	if matched == 0 {
		return notFound("Receta no encontrada")
	}

	s.metrics.IncUpdated(metrics.EntityRecipe)

	return nil
}

// Delete removes a recipe after removing its ingredients. The two steps are
// not atomic: ingredients are gone even when the recipe delete fails.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	recipeID, err := store.ParseID(id)
	if err != nil {
		return invalid("id inválido")
	}

	if _, err := s.ingredients.deleteByRecipes(ctx, recipeID); err != nil {
		return err
	}

	deleted, err := s.recipes.DeleteOne(ctx, store.Where(store.ByID(recipeID)))
	if err != nil {
		return storeFailure("delete recipe", err)
	}
	if deleted == 0 {
		return notFound("Receta no encontrada")
	}

	s.metrics.AddDeleted(metrics.EntityRecipe, deleted)

	return nil
}

// ListByUser returns the recipes owned by the user with the given
// client-assigned id.
func (s *RecipeService) ListByUser(ctx context.Context, userID string) ([]model.Recipe, error) {
	n, ok := parseNumber(userID)
	if !ok {
		return nil, invalid("userId inválido")
	}
	if !finite(n) {
		return []model.Recipe{}, nil
	}
	return s.find(ctx, store.Where(store.Eq("userId", n)))
}

func (s *RecipeService) find(ctx context.Context, filter store.Filter) ([]model.Recipe, error) {
	docs, err := s.recipes.Find(ctx, filter)
	if err != nil {
		return nil, storeFailure("find recipes", err)
	}

	recipes, err := store.DecodeAll[model.Recipe](docs)
	if err != nil {
		return nil, storeFailure("decode recipes", err)
	}
	return recipes, nil
}
