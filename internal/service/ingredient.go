// Package service provides business logic for the application.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/store"
)

// IngredientService manages ingredients and ingredient-based recipe search.
type IngredientService struct {
	ingredients store.Collection
	recipes     store.Collection
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(st store.Store, recorder metrics.Recorder, logger *slog.Logger) *IngredientService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IngredientService{
		ingredients: st.Collection(store.Ingredients),
		recipes:     st.Collection(store.Recipes),
		metrics:     recorder,
		logger:      logger,
	}
}

// AddIngredientInput defines input for adding an ingredient to a recipe.
type AddIngredientInput struct {
	RecipeID string `validate:"required"`
	Nombre   string `validate:"required"`
}

// Add attaches a new ingredient to an existing recipe.
func (s *IngredientService) Add(ctx context.Context, input AddIngredientInput) (*model.Ingredient, error) {
	if !present(input) {
		return nil, missing("Faltan campos: recetaId, nombre")
	}
	recipeID, err := store.ParseID(input.RecipeID)
	if err != nil {
		return nil, invalid("recetaId inválido")
	}

	if _, err := s.recipes.FindOne(ctx, store.Where(store.ByID(recipeID))); err != nil {
		if isNoDocuments(err) {
			return nil, notFound("Receta no encontrada")
		}
		return nil, storeFailure("find recipe", err)
	}

	ing := &model.Ingredient{
		RecipeID:  recipeID,
		Nombre:    input.Nombre,
		CreatedAt: time.Now().UTC(),
	}
	doc, err := store.Encode(ing)
	if err != nil {
		return nil, storeFailure("encode ingredient", err)
	}

	id, err := s.ingredients.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeFailure("insert ingredient", err)
	}
	ing.ID = id

	s.metrics.IncCreated(metrics.EntityIngredient)

	return ing, nil
}

// ListByRecipe returns every ingredient of the recipe with the given identifier.
func (s *IngredientService) ListByRecipe(ctx context.Context, recipeID string) ([]model.Ingredient, error) {
	id, err := store.ParseID(recipeID)
	if err != nil {
		return nil, invalid("recetaId inválido")
	}

	docs, err := s.ingredients.Find(ctx, store.Where(store.Eq("recetaId", id)))
	if err != nil {
		return nil, storeFailure("find ingredients", err)
	}

	ings, err := store.DecodeAll[model.Ingredient](docs)
	if err != nil {
		return nil, storeFailure("decode ingredients", err)
	}
	return ings, nil
}

// Delete removes a single ingredient.
func (s *IngredientService) Delete(ctx context.Context, id string) error {
	ingID, err := store.ParseID(id)
	if err != nil {
		return invalid("id inválido")
	}

	deleted, err := s.ingredients.DeleteOne(ctx, store.Where(store.ByID(ingID)))
	if err != nil {
		return storeFailure("delete ingredient", err)
	}
	if deleted == 0 {
		return notFound("Ingrediente no encontrado")
	}

	s.metrics.AddDeleted(metrics.EntityIngredient, deleted)

	return nil
}

// SearchRecipes returns the distinct recipes having at least one ingredient
// whose name contains name, ignoring case.
func (s *IngredientService) SearchRecipes(ctx context.Context, name string) ([]model.Recipe, error) {
	if name == "" {
		return nil, missing("Falta query param: ingrediente")
	}

	docs, err := s.ingredients.Find(ctx, store.Where(store.ContainsFold("nombre", name)))
	if err != nil {
		return nil, storeFailure("find ingredients", err)
	}

	seen := make(map[string]struct{}, len(docs))
	recipeIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		id, _ := doc["recetaId"].(string)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		recipeIDs = append(recipeIDs, id)
	}

	if len(recipeIDs) == 0 {
		return []model.Recipe{}, nil
	}

	recipeDocs, err := s.recipes.Find(ctx, store.Where(store.In(store.IDField, recipeIDs...)))
	if err != nil {
		return nil, storeFailure("find recipes", err)
	}

	recipes, err := store.DecodeAll[model.Recipe](recipeDocs)
	if err != nil {
		return nil, storeFailure("decode recipes", err)
	}
	return recipes, nil
}

// deleteByRecipes removes every ingredient referencing one of recipeIDs.
func (s *IngredientService) deleteByRecipes(ctx context.Context, recipeIDs ...string) (int64, error) {
	deleted, err := s.ingredients.DeleteMany(ctx, store.Where(store.In("recetaId", recipeIDs...)))
	if err != nil {
		return 0, storeFailure("delete ingredients", err)
	}

	s.metrics.AddDeleted(metrics.EntityIngredient, deleted)
	s.logger.Debug("ingredients deleted by cascade",
		"recipe_count", len(recipeIDs),
		"deleted", deleted,
	)

	return deleted, nil
}
