/**
 * @description
 * HTTP handlers for the client-status lifecycle. Listing responses carry the
 * derived days-remaining label alongside each record; the label is computed
 * per response and never stored.
 */
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// clientStatusResponse wraps a record with its display projection.
type clientStatusResponse struct {
	domain.ClientStatus
	DaysRemaining string `json:"daysRemaining"`
}

func newClientStatusResponse(cs domain.ClientStatus, now time.Time) clientStatusResponse {
	return clientStatusResponse{
		ClientStatus:  cs,
		DaysRemaining: cs.DaysRemainingLabel(now),
	}
}

// handleCreateClientStatus handles POST /client-status.
func (h *Handler) handleCreateClientStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateClientStatus(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newClientStatusResponse(*created, time.Now()))
}

// handleListClientStatuses handles GET /client-status. Listing reconciles
// expirations before returning.
func (h *Handler) handleListClientStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListClientStatuses(r.Context())
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	now := time.Now()
	responses := make([]clientStatusResponse, 0, len(items))
	for _, cs := range items {
		responses = append(responses, newClientStatusResponse(cs, now))
	}
	respondWithJSON(w, http.StatusOK, responses)
}

// handleUpdateClientStatus handles PATCH /client-status/{id}.
func (h *Handler) handleUpdateClientStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req domain.UpdateClientStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateClientStatus(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newClientStatusResponse(*updated, time.Now()))
}

// handleDeleteClientStatus handles DELETE /client-status/{id}. Any failure,
// including an unknown id, collapses to a generic internal error; the
// endpoint has no distinct not-found response.
func (h *Handler) handleDeleteClientStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	if err := h.service.DeleteClientStatus(r.Context(), id); err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "Client status deleted")
}
