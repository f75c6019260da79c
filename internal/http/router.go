package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blip-cmd/xpense/internal/http/account"
	"github.com/blip-cmd/xpense/internal/http/alerts"
	"github.com/blip-cmd/xpense/internal/http/category"
	"github.com/blip-cmd/xpense/internal/http/expenditure"
)

// New builds the API router. When authSecret is non-blank, mutating routes
// require a bearer token signed with it.
func New(
	authSecret string,
	expendituresV1 *expenditure.Handler,
	accountsV1 *account.Handler,
	categoriesV1 *category.Handler,
	alertsV1 *alerts.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if authSecret != "" {
			r.Use(RequireToken(authSecret))
		}

		r.Route("/expenditures", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expendituresV1.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/alerts", alertsV1.Routes)
	})

	return router
}
