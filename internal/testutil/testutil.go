// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/service"
	"github.com/recetario/recetario/internal/store"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Services bundles the three services over one store.
type Services struct {
	Store       store.Store
	Metrics     *metrics.InMemoryRecorder
	Users       *service.UserService
	Recipes     *service.RecipeService
	Ingredients *service.IngredientService
}

// NewServices wires the services over st with an in-memory recorder.
func NewServices(st store.Store) *Services {
	logger := DiscardLogger()
	recorder := metrics.NewInMemory()
	ingredients := service.NewIngredientService(st, recorder, logger)
	return &Services{
		Store:       st,
		Metrics:     recorder,
		Users:       service.NewUserService(st, ingredients, recorder, logger),
		Recipes:     service.NewRecipeService(st, ingredients, recorder, logger),
		Ingredients: ingredients,
	}
}

// NewMemoryServices wires the services over a fresh in-memory store.
func NewMemoryServices() *Services {
	return NewServices(store.NewMemory())
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

// CreateUser creates a user with the given client id or fails the test.
func (s *Services) CreateUser(t testing.TB, id float64, nombre string) *model.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), service.CreateUserInput{
		ID:     Float(id),
		Nombre: nombre,
		Email:  nombre + "@example.com",
		Edad:   Float(30),
	})
	if err != nil {
		t.Fatalf("create user %v: %v", id, err)
	}
	return u
}

// CreateRecipe creates a recipe owned by userID or fails the test.
func (s *Services) CreateRecipe(t testing.TB, userID float64, title string) *model.Recipe {
	t.Helper()
	r, err := s.Recipes.Create(context.Background(), service.CreateRecipeInput{
		Title:       title,
		Description: title + " casera",
		UserID:      Float(userID),
	})
	if err != nil {
		t.Fatalf("create recipe %q: %v", title, err)
	}
	return r
}

// AddIngredient adds an ingredient to recipeID or fails the test.
func (s *Services) AddIngredient(t testing.TB, recipeID, nombre string) *model.Ingredient {
	t.Helper()
	ing, err := s.Ingredients.Add(context.Background(), service.AddIngredientInput{
		RecipeID: recipeID,
		Nombre:   nombre,
	})
	if err != nil {
		t.Fatalf("add ingredient %q: %v", nombre, err)
	}
	return ing
}

// Count returns the number of documents in the named collection.
func Count(t testing.TB, st store.Store, collection string) int {
	t.Helper()
	docs, err := st.Collection(collection).Find(context.Background(), store.All)
	if err != nil {
		t.Fatalf("count %s: %v", collection, err)
	}
	return len(docs)
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}
