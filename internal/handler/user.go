package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Routes mounts the user endpoints on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /api/usuarios.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMalformedBody)
		return
	}

	user, err := h.svc.Create(r.Context(), service.CreateUserInput{
		ID:     rawNumber(req.ID),
		Nombre: req.Nombre,
		Email:  req.Email,
		Edad:   rawNumber(req.Edad),
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al crear usuario")
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ObjectID,
		"external_id", user.ID,
	)

	writeJSON(w, http.StatusCreated, dto.UserCreatedResponse{
		Message: "Usuario creado",
		Usuario: user,
	})
}

// List handles GET /api/usuarios.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al obtener usuarios")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /api/usuarios/{id}. The id is either the numeric
// client-assigned id or the store identifier.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err, "Error al obtener usuario")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/usuarios/{id}. Every body field is stored as sent.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMalformedBody)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Update(r.Context(), id, fields); err != nil {
		handleServiceError(w, h.logger, err, "Error al actualizar usuario")
		return
	}

	h.logger.Info("user_updated", "user_ref", id, "fields", len(fields))

	writeMessage(w, http.StatusOK, "Usuario actualizado")
}

// Delete handles DELETE /api/usuarios/{id}, removing the user's recipes and
// their ingredients too.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "Error al eliminar usuario")
		return
	}

	h.logger.Info("user_deleted", "user_ref", id)

	writeMessage(w, http.StatusOK, "Usuario y sus recetas (e ingredientes) eliminados")
}

// rawNumber converts a raw JSON body value to a number. A missing value
// yields nil.
func rawNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	n := service.CoerceNumber(v)
	return &n
}
