/**
 * @description
 * HTTP handlers for the service catalog. Reads are public; mutations sit
 * behind the session middleware and operate on behalf of the resolved actor.
 */
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// handleListServices handles GET /services.
func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, services)
}

// handleCreateService handles POST /services.
func (h *Handler) handleCreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondWithMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateService(r.Context(), actor, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// handleUpdateService handles PATCH /services/{id}.
func (h *Handler) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondWithMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req domain.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateService(r.Context(), actor, id, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// handleDeleteService handles DELETE /services/{id}.
func (h *Handler) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondWithMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.service.DeleteService(r.Context(), actor, id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Service deleted")
}
