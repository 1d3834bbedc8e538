package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/httputil"
	"github.com/williamsgomess/seubarriga-api/internal/services"
)

// transferBody is the wire shape of a transfer request. Any user_id in the
// body is ignored; the owner always comes from the token.
type transferBody struct {
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	AccOriID    *uint64          `json:"acc_ori_id"`
	AccDestID   *uint64          `json:"acc_dest_id"`
}

// @Summary List the caller's transfers
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Transfer
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/transfers [get]
func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	transfers, err := h.svc.Transfers.List(r.Context(), c)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, transfers)
}

// @Summary Create a transfer and its two transactions
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.transferBody true "Transfer"
// @Success 201 {object} models.Transfer
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/transfers [post]
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	var body transferBody
	if !decode(w, r, &body) {
		return
	}

	t, err := h.svc.Transfers.Create(r.Context(), c, services.TransferRequest{
		Description: deref(body.Description),
		Date:        body.Date,
		Amount:      body.Amount,
		AccOriID:    body.AccOriID,
		AccDestID:   body.AccDestID,
	})
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, t)
}

// @Summary Get a transfer
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transfer ID"
// @Success 200 {object} models.Transfer
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/transfers/{id} [get]
func (h *Handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Transfers.Get(r.Context(), c, id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// @Summary Update a transfer and its transactions
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transfer ID"
// @Param request body handlers.transferBody true "Fields to change"
// @Success 200 {object} models.Transfer
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/transfers/{id} [put]
func (h *Handler) UpdateTransfer(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body transferBody
	if !decode(w, r, &body) {
		return
	}

	t, err := h.svc.Transfers.Update(r.Context(), c, id, services.TransferPatch{
		Description: body.Description,
		Date:        body.Date,
		Amount:      body.Amount,
		AccOriID:    body.AccOriID,
		AccDestID:   body.AccDestID,
	})
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// @Summary Delete a transfer and its transactions
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transfer ID"
// @Success 204
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/transfers/{id} [delete]
func (h *Handler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Transfers.Remove(r.Context(), c, id); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
