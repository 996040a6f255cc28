/**
 * @description
 * This file contains the Handler type shared by every endpoint, the JSON
 * response helpers, and the mapping from the application error taxonomy to
 * HTTP status codes.
 */
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Viikudev/netflix-crm/internal/app"
	"github.com/Viikudev/netflix-crm/internal/domain"
)

// Handler holds the application services that handlers interact with.
type Handler struct {
	service *app.Service
	quotes  *app.QuoteService
	logger  *slog.Logger
	// debugErrors returns raw failure messages on 500s. Enabled outside
	// production only.
	debugErrors bool
}

// NewHandler creates a new Handler.
func NewHandler(service *app.Service, quotes *app.QuoteService, logger *slog.Logger, debugErrors bool) *Handler {
	return &Handler{
		service:     service,
		quotes:      quotes,
		logger:      logger,
		debugErrors: debugErrors,
	}
}

// messageResponse is the uniform body for confirmations and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithMessage writes a {"message": ...} body.
func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, messageResponse{Message: message})
}

// respondServiceError maps the application error taxonomy to HTTP codes:
// validation 400, missing session 401, dangling reference 404, restricted
// delete 409, everything else 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondWithMessage(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var notFoundErr *app.NotFoundError
	if errors.As(err, &notFoundErr) {
		respondWithMessage(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	if errors.Is(err, app.ErrUnauthorized) {
		respondWithMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if errors.Is(err, app.ErrReferenced) {
		respondWithMessage(w, http.StatusConflict, "record is referenced by client statuses")
		return
	}

	h.respondInternalError(w, r, err)
}

// respondInternalError logs the failure and returns a generic message, or
// the raw message outside production.
func (h *Handler) respondInternalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	if h.debugErrors {
		respondWithMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithMessage(w, http.StatusInternalServerError, "Internal error")
}

// handleHealth reports liveness.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("CRM backend is healthy"))
}
