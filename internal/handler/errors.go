package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

const msgMalformedBody = "Cuerpo de la petición inválido"

// handleServiceError maps service errors to HTTP responses. failure is the
// message sent with a 500, naming the operation that failed.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error, failure string) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Error("internal_error", "operation", failure, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: failure, Error: err.Error()})
		return
	}

	switch {
	case errors.Is(svcErr.Kind, service.ErrMissingParameter),
		errors.Is(svcErr.Kind, service.ErrInvalidReference):
		writeMessage(w, http.StatusBadRequest, svcErr.Message)
	case errors.Is(svcErr.Kind, service.ErrConflict):
		writeMessage(w, http.StatusConflict, svcErr.Message)
	case errors.Is(svcErr.Kind, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, svcErr.Message)
	default:
		detail := svcErr.Error()
		if svcErr.Err != nil {
			detail = svcErr.Err.Error()
		}
		logger.Error("store_failure", "operation", failure, "step", svcErr.Message, "error", svcErr.Err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: failure, Error: detail})
	}
}
