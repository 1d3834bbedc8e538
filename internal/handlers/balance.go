package handlers

import (
	"net/http"

	"github.com/williamsgomess/seubarriga-api/internal/httputil"
)

// @Summary Per-account balances up to now
// @Tags balance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Balance
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/balance [get]
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	balances, err := h.svc.Balance.ByAccount(r.Context(), c)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, balances)
}
