package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/httputil"
	"github.com/williamsgomess/seubarriga-api/internal/middleware"
	"github.com/williamsgomess/seubarriga-api/internal/services"
)

type Handler struct {
	svc       *services.Services
	jwtSecret string
	jwtTTL    time.Duration
}

func New(svc *services.Services, jwtSecret string, jwtTTL time.Duration) *Handler {
	return &Handler{svc: svc, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

func caller(w http.ResponseWriter, r *http.Request) (access.Caller, bool) {
	c, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
	}
	return c, ok
}

func idParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httputil.DecodeJSON(r, v); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
