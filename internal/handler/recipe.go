package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	svc    *service.RecipeService
	logger *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		svc:    svc,
		logger: logger,
	}
}

// Routes mounts the recipe endpoints on r.
func (h *RecipeHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/usuario/{userId}", h.ListByUser)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /api/recetas.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMalformedBody)
		return
	}

	recipe, err := h.svc.Create(r.Context(), service.CreateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      rawNumber(req.UserID),
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al crear receta")
		return
	}

	h.logger.Info("recipe_created",
		"recipe_id", recipe.ID,
		"user_id", recipe.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.RecipeCreatedResponse{
		Message: "Receta creada",
		Receta:  recipe,
	})
}

// List handles GET /api/recetas.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al listar recetas")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Get handles GET /api/recetas/{id}, including the recipe's ingredients.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al obtener receta")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Update handles PUT /api/recetas/{id}. Only title and description change.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMalformedBody)
		return
	}

	id := chi.URLParam(r, "id")
	err := h.svc.Update(r.Context(), id, service.UpdateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al actualizar receta")
		return
	}

	h.logger.Info("recipe_updated", "recipe_id", id)

	writeMessage(w, http.StatusOK, "Receta actualizada")
}

// Delete handles DELETE /api/recetas/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "Error al eliminar receta")
		return
	}

	h.logger.Info("recipe_deleted", "recipe_id", id)

	writeMessage(w, http.StatusOK, "Receta e ingredientes eliminados")
}

// ListByUser handles GET /api/recetas/usuario/{userId}.
func (h *RecipeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al listar recetas por usuario")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}
