/**
 * @description
 * HTTP handler for the USDT/VES exchange-rate quote.
 */
package api

import (
	"net/http"
)

// quoteResponse carries the current sell price in VES per USDT.
type quoteResponse struct {
	Price float64 `json:"price"`
}

// handleGetUSDTVESRate handles GET /rates/usdt-ves. The quote is served from
// cache when fresh; upstream failures surface as 503 so the dashboard can
// distinguish "source down" from a backend fault.
func (h *Handler) handleGetUSDTVESRate(w http.ResponseWriter, r *http.Request) {
	price, err := h.quotes.GetUSDTVESPrice(r.Context())
	if err != nil {
		h.logger.Warn("quote fetch failed", "error", err)
		respondWithMessage(w, http.StatusServiceUnavailable, "Quote unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, quoteResponse{Price: price})
}
