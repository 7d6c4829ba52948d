package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rmaldonado/obrix/internal/auth"
	authHandler "github.com/rmaldonado/obrix/internal/http/auth"
	clientHandler "github.com/rmaldonado/obrix/internal/http/client"
	employeeHandler "github.com/rmaldonado/obrix/internal/http/employee"
	expenseHandler "github.com/rmaldonado/obrix/internal/http/expense"
	"github.com/rmaldonado/obrix/internal/http/listquery"
	paymentHandler "github.com/rmaldonado/obrix/internal/http/payment"
	projectHandler "github.com/rmaldonado/obrix/internal/http/project"
	timeentryHandler "github.com/rmaldonado/obrix/internal/http/timeentry"
)

// Handlers bundles the per-collection handlers wired by cmd/api.
type Handlers struct {
	Auth      *authHandler.Handler
	Projects  *projectHandler.Handler
	Employees *employeeHandler.Handler
	Clients   *clientHandler.Handler
	Expenses  *expenseHandler.Handler
	Times     *timeentryHandler.Handler
	Payments  *paymentHandler.Handler
}

// New assembles the API router. Login is public; every collection route sits
// behind the bearer-token middleware.
func New(h Handlers, jwtSecret string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{listquery.TotalCountHeader},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			r.Route("/proyectos", func(r chi.Router) {
				h.Projects.Routes(r)
			})

			r.Route("/personal", func(r chi.Router) {
				h.Employees.Routes(r)
			})

			r.Route("/clientes", func(r chi.Router) {
				h.Clients.Routes(r)
			})

			r.Route("/gastosProyecto", func(r chi.Router) {
				h.Expenses.Routes(r)
			})

			r.Route("/tiempos", func(r chi.Router) {
				h.Times.Routes(r)
			})

			r.Route("/pagosPersonal", func(r chi.Router) {
				h.Payments.Routes(r)
			})
		})
	})

	return router
}
