// Package seed loads a dataset of users, recipes and ingredients into a store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recetario/recetario/internal/service"
	"github.com/recetario/recetario/internal/store"
)

//go:embed dataset.yaml
var defaultDataset []byte

// Dataset is the seed file format.
type Dataset struct {
	Users   []User   `yaml:"users"`
	Recipes []Recipe `yaml:"recipes"`
}

// User is a seeded user.
type User struct {
	ID     float64 `yaml:"id"`
	Nombre string  `yaml:"nombre"`
	Email  string  `yaml:"email"`
	Edad   float64 `yaml:"edad"`
}

// Recipe is a seeded recipe with the names of its ingredients.
type Recipe struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	UserID       float64  `yaml:"userId"`
	Ingredientes []string `yaml:"ingredientes"`
}

// Summary counts the records created by Apply.
type Summary struct {
	Users       int
	Recipes     int
	Ingredients int
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return parse(defaultDataset)
}

// Load reads a dataset from a YAML file. An empty path yields the embedded
// dataset.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &ds, nil
}

// Seeder writes datasets through the services, so seeded records pass the
// same checks as records created over HTTP.
type Seeder struct {
	store       store.Store
	users       *service.UserService
	recipes     *service.RecipeService
	ingredients *service.IngredientService
	logger      *slog.Logger
}

// NewSeeder creates a Seeder. st is only used to clear collections.
func NewSeeder(st store.Store, users *service.UserService, recipes *service.RecipeService, ingredients *service.IngredientService, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{store: st, users: users, recipes: recipes, ingredients: ingredients, logger: logger}
}

// Reset deletes every document of the three collections.
func (s *Seeder) Reset(ctx context.Context) error {
	for _, name := range []string{store.Users, store.Recipes, store.Ingredients} {
		n, err := s.store.Collection(name).DeleteMany(ctx, store.All)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
		s.logger.Info("collection cleared", "collection", name, "deleted", n)
	}
	return nil
}

// Apply creates every record of ds, clearing the collections first when
// reset is set. It stops at the first failure.
func (s *Seeder) Apply(ctx context.Context, ds *Dataset, reset bool) (Summary, error) {
	var sum Summary

	if reset {
		if err := s.Reset(ctx); err != nil {
			return sum, err
		}
	}

	for _, u := range ds.Users {
		if _, err := s.users.Create(ctx, service.CreateUserInput{
			ID:     &u.ID,
			Nombre: u.Nombre,
			Email:  u.Email,
			Edad:   &u.Edad,
		}); err != nil {
			return sum, fmt.Errorf("seed user %v: %w", u.ID, err)
		}
		sum.Users++
	}

	for _, r := range ds.Recipes {
		recipe, err := s.recipes.Create(ctx, service.CreateRecipeInput{
			Title:       r.Title,
			Description: r.Description,
			UserID:      &r.UserID,
		})
		if err != nil {
			return sum, fmt.Errorf("seed recipe %q: %w", r.Title, err)
		}
		sum.Recipes++

		for _, name := range r.Ingredientes {
			if _, err := s.ingredients.Add(ctx, service.AddIngredientInput{
				RecipeID: recipe.ID,
				Nombre:   name,
			}); err != nil {
				return sum, fmt.Errorf("seed ingredient %q of %q: %w", name, r.Title, err)
			}
			sum.Ingredients++
		}
	}

	s.logger.Info("dataset applied",
		"users", sum.Users,
		"recipes", sum.Recipes,
		"ingredients", sum.Ingredients,
	)
	return sum, nil
}
