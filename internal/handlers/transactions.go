package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/httputil"
	"github.com/williamsgomess/seubarriga-api/internal/services"
	"github.com/williamsgomess/seubarriga-api/internal/store"
)

// transactionBody is the wire shape of a transaction request. Fields the
// caller may not set (id, transfer_id) are not decoded.
type transactionBody struct {
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	Type        *string          `json:"type"`
	AccID       *uint64          `json:"acc_id"`
}

// @Summary List the caller's transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param acc_id query int false "Account ID"
// @Param transfer_id query int false "Transfer ID"
// @Param type query string false "I or O"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	f, err := transactionFilter(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid filter")
		return
	}

	transactions, err := h.svc.Transactions.List(r.Context(), c, f)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, transactions)
}

// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.transactionBody true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	var body transactionBody
	if !decode(w, r, &body) {
		return
	}

	t, err := h.svc.Transactions.Create(r.Context(), c, services.TransactionRequest{
		Description: deref(body.Description),
		Date:        body.Date,
		Amount:      body.Amount,
		Type:        deref(body.Type),
		AccID:       body.AccID,
	})
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, t)
}

// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/transactions/{id} [get]
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Transactions.Get(r.Context(), c, id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// @Summary Update a standalone transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body handlers.transactionBody true "Fields to change"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/transactions/{id} [put]
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body transactionBody
	if !decode(w, r, &body) {
		return
	}

	t, err := h.svc.Transactions.Update(r.Context(), c, id, services.TransactionPatch{
		Description: body.Description,
		Date:        body.Date,
		Amount:      body.Amount,
		Type:        body.Type,
		AccID:       body.AccID,
	})
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

// @Summary Delete a standalone transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Transactions.Remove(r.Context(), c, id); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// transactionFilter reads the optional acc_id, transfer_id and type query
// parameters.
func transactionFilter(r *http.Request) (store.TransactionFilter, error) {
	var f store.TransactionFilter
	q := r.URL.Query()
	if v := q.Get("acc_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, err
		}
		f.AccID = id
	}
	if v := q.Get("transfer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, err
		}
		f.TransferID = &id
	}
	f.Type = q.Get("type")
	return f, nil
}
