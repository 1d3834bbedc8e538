package handlers

import (
	"net/http"

	"github.com/williamsgomess/seubarriga-api/internal/httputil"
	"github.com/williamsgomess/seubarriga-api/internal/services"
)

type accountBody struct {
	Name *string `json:"name"`
}

// @Summary List the caller's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param name query string false "Exact account name"
// @Success 200 {array} models.Account
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/accounts [get]
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	accounts, err := h.svc.Accounts.List(r.Context(), c, r.URL.Query().Get("name"))
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, accounts)
}

// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.accountBody true "Account"
// @Success 201 {object} models.Account
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /v1/accounts [post]
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	var body accountBody
	if !decode(w, r, &body) {
		return
	}

	acc, err := h.svc.Accounts.Create(r.Context(), c, services.CreateAccountRequest{Name: deref(body.Name)})
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, acc)
}

// @Summary Get an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} models.Account
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/accounts/{id} [get]
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Accounts.Get(r.Context(), c, id)
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, acc)
}

// @Summary Rename an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body handlers.accountBody true "Account"
// @Success 200 {object} models.Account
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/accounts/{id} [put]
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body accountBody
	if !decode(w, r, &body) {
		return
	}

	acc, err := h.svc.Accounts.Update(r.Context(), c, id, services.UpdateAccountRequest{Name: body.Name})
	if err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, acc)
}

// @Summary Delete an account without transactions
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /v1/accounts/{id} [delete]
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Accounts.Remove(r.Context(), c, id); err != nil {
		httputil.WriteAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
