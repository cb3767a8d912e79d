package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/store"
)

// UserService handles user business logic, including the cascade that removes
// a user's recipes and their ingredients.
type UserService struct {
	users       store.Collection
	recipes     store.Collection
	ingredients *IngredientService
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(st store.Store, ingredients *IngredientService, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:       st.Collection(store.Users),
		recipes:     st.Collection(store.Recipes),
		ingredients: ingredients,
		metrics:     recorder,
		logger:      logger,
	}
}

// CreateUserInput defines input for creating a user.
// Nil numbers mean the field was not provided.
type CreateUserInput struct {
	ID     *float64 `validate:"required"`
	Nombre string   `validate:"required"`
	Email  string   `validate:"required"`
	Edad   *float64 `validate:"required"`
}

// Create stores a new user. The client-assigned id must not be in use.
//
// The uniqueness check and the insert are separate store calls, so two
// concurrent creates with the same id can both succeed.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if !present(input) {
		return nil, missing("Faltan campos: id, nombre, email, edad")
	}
	if !finite(*input.ID) {
		return nil, invalid("id inválido")
	}
	if !finite(*input.Edad) {
		return nil, invalid("edad inválida")
	}

	_, err := s.users.FindOne(ctx, store.Where(store.Eq("id", *input.ID)))
	switch {
	case err == nil:
		return nil, conflict("El id ya existe")
	case !isNoDocuments(err):
		return nil, storeFailure("find user", err)
	}

	user := &model.User{
		ID:        *input.ID,
		Nombre:    input.Nombre,
		Email:     input.Email,
		Edad:      *input.Edad,
		CreatedAt: time.Now().UTC(),
	}
	doc, err := store.Encode(user)
	if err != nil {
		return nil, storeFailure("encode user", err)
	}

	oid, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeFailure("insert user", err)
	}
	user.ObjectID = oid

	s.metrics.IncCreated(metrics.EntityUser)

	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	docs, err := s.users.Find(ctx, store.All)
	if err != nil {
		return nil, storeFailure("find users", err)
	}

	users, err := store.DecodeAll[model.User](docs)
	if err != nil {
		return nil, storeFailure("decode users", err)
	}
	return users, nil
}

// Get returns the user addressed by raw, which is either a client-assigned
// numeric id or a store identifier.
func (s *UserService) Get(ctx context.Context, raw string) (*model.User, error) {
	ref, err := ResolveUserRef(raw)
	if err != nil {
		return nil, err
	}
	if !ref.matchable() {
		return nil, notFound("Usuario no encontrado (por id)")
	}

	doc, err := s.users.FindOne(ctx, ref.filter())
	if err != nil {
		if isNoDocuments(err) {
			if ref.Kind == RefStore {
				return nil, notFound("Usuario no encontrado (por _id)")
			}
			return nil, notFound("Usuario no encontrado (por id)")
		}
		return nil, storeFailure("find user", err)
	}

	user := &model.User{}
	if err := store.Decode(doc, user); err != nil {
		return nil, storeFailure("decode user", err)
	}
	return user, nil
}

// Update sets every field of fields on the addressed user as given. There is
// no allow-list: callers may add arbitrary fields or overwrite the id.
func (s *UserService) Update(ctx context.Context, raw string, fields map[string]any) error {
	if len(fields) == 0 {
		return missing("No hay campos para actualizar")
	}

	ref, err := ResolveUserRef(raw)
	if err != nil {
		return err
	}
	if !ref.matchable() {
		return notFound("Usuario no encontrado")
	}

	matched, err := s.users.UpdateOne(ctx, ref.filter(), store.Document(fields))
	if err != nil {
		return storeFailure("update user", err)
	}
	if matched == 0 {
		return notFound("Usuario no encontrado")
	}

	s.metrics.IncUpdated(metrics.EntityUser)

	return nil
}

// Delete removes a user together with every recipe owned by the user's
// client-assigned id and the ingredients of those recipes.
//
// Steps run in order (ingredients, recipes, user) and are not atomic; a
// failure stops the sequence and leaves earlier deletions in place.
func (s *UserService) Delete(ctx context.Context, raw string) error {
	ref, err := ResolveUserRef(raw)
	if err != nil {
		return err
	}
	if !ref.matchable() {
		return notFound("Usuario no encontrado")
	}

	doc, err := s.users.FindOne(ctx, ref.filter())
	if err != nil {
		if isNoDocuments(err) {
			return notFound("Usuario no encontrado")
		}
		return storeFailure("find user", err)
	}

	// The stored id is used as-is, even when the user was found by _id.
	externalID := doc["id"]

	recipeDocs, err := s.recipes.Find(ctx, store.Where(store.Eq("userId", externalID)))
	if err != nil {
		return storeFailure("find recipes", err)
	}

	recipeIDs := make([]string, 0, len(recipeDocs))
	for _, r := range recipeDocs {
		recipeIDs = append(recipeIDs, r.ID())
	}

	if len(recipeIDs) > 0 {
		if _, err := s.ingredients.deleteByRecipes(ctx, recipeIDs...); err != nil {
			return err
		}

		deleted, err := s.recipes.DeleteMany(ctx, store.Where(store.In(store.IDField, recipeIDs...)))
		if err != nil {
			return storeFailure("delete recipes", err)
		}
		s.metrics.AddDeleted(metrics.EntityRecipe, deleted)
	}

	userFilter := store.Where(store.Eq("id", externalID))
	if oid := doc.ID(); oid != "" {
		userFilter = store.Where(store.ByID(oid))
	}

	deleted, err := s.users.DeleteOne(ctx, userFilter)
	if err != nil {
		return storeFailure("delete user", err)
	}
	s.metrics.AddDeleted(metrics.EntityUser, deleted)

	s.logger.Info("user deleted",
		"user_id", doc.ID(),
		"recipes", len(recipeIDs),
	)

	return nil
}
