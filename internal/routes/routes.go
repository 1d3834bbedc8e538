package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/williamsgomess/seubarriga-api/docs"
	"github.com/williamsgomess/seubarriga-api/internal/handlers"
	appmw "github.com/williamsgomess/seubarriga-api/internal/middleware"
	"github.com/williamsgomess/seubarriga-api/internal/telemetry"
)

func NewRoutes(h *handlers.Handler, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	r.With(appmw.Authenticated(jwtSecret)).Get("/auth/me", h.Me)

	r.Route("/v1", func(r chi.Router) {
		r.Use(appmw.Authenticated(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.ListAccounts)
			r.Post("/", h.CreateAccount)
			r.Get("/{id}", h.GetAccount)
			r.Put("/{id}", h.UpdateAccount)
			r.Delete("/{id}", h.DeleteAccount)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Post("/", h.CreateTransaction)
			r.Get("/{id}", h.GetTransaction)
			r.Put("/{id}", h.UpdateTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
		})

		r.Route("/transfers", func(r chi.Router) {
			r.Get("/", h.ListTransfers)
			r.Post("/", h.CreateTransfer)
			r.Get("/{id}", h.GetTransfer)
			r.Put("/{id}", h.UpdateTransfer)
			r.Delete("/{id}", h.DeleteTransfer)
		})

		r.Get("/balance", h.Balance)
		r.Get("/users", h.ListUsers)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", telemetry.Handler())

	return r
}
