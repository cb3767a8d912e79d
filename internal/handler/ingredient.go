package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

// IngredientHandler handles HTTP requests for ingredient operations.
type IngredientHandler struct {
	svc    *service.IngredientService
	logger *slog.Logger
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(svc *service.IngredientService, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{
		svc:    svc,
		logger: logger,
	}
}

// Routes mounts the ingredient endpoints on r.
func (h *IngredientHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/buscar", h.Search)
	r.Get("/receta/{recetaId}", h.ListByRecipe)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /api/ingredientes.
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIngredientRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMalformedBody)
		return
	}

	ing, err := h.svc.Add(r.Context(), service.AddIngredientInput{
		RecipeID: req.Recipe(),
		Nombre:   req.Nombre,
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al agregar ingrediente")
		return
	}

	h.logger.Info("ingredient_created",
		"ingredient_id", ing.ID,
		"recipe_id", ing.RecipeID,
	)

	writeJSON(w, http.StatusCreated, dto.IngredientCreatedResponse{
		Message:     "Ingrediente agregado",
		Ingrediente: ing,
	})
}

// ListByRecipe handles GET /api/ingredientes/receta/{recetaId}.
func (h *IngredientHandler) ListByRecipe(w http.ResponseWriter, r *http.Request) {
	ings, err := h.svc.ListByRecipe(r.Context(), chi.URLParam(r, "recetaId"))
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al listar ingredientes")
		return
	}
	writeJSON(w, http.StatusOK, ings)
}

// Delete handles DELETE /api/ingredientes/{id}.
func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "Error al eliminar ingrediente")
		return
	}

	h.logger.Info("ingredient_deleted", "ingredient_id", id)

	writeMessage(w, http.StatusOK, "Ingrediente eliminado")
}

// Search handles GET /api/ingredientes/buscar?ingrediente=X, returning the
// recipes that have an ingredient whose name contains X.
func (h *IngredientHandler) Search(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.SearchRecipes(r.Context(), r.URL.Query().Get("ingrediente"))
	if err != nil {
		handleServiceError(w, h.logger, err, "Error buscando recetas por ingrediente")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}
