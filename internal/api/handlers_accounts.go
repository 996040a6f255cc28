/**
 * @description
 * HTTP handlers for the active-account pool.
 */
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// handleCreateActiveAccount handles POST /active-account.
func (h *Handler) handleCreateActiveAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActiveAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateActiveAccount(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// handleListActiveAccounts handles GET /active-account.
func (h *Handler) handleListActiveAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListActiveAccounts(r.Context())
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, accounts)
}

// handleUpdateActiveAccount handles PATCH /active-account/{id}.
func (h *Handler) handleUpdateActiveAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req domain.UpdateActiveAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateActiveAccount(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// handleDeleteActiveAccount handles DELETE /active-account/{id}.
func (h *Handler) handleDeleteActiveAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.service.DeleteActiveAccount(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "Active account deleted")
}
