package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.listGenres)
			r.Get("/{id}", app.getGenre)
			r.With(app.requireAuthenticated).Post("/", app.createGenre)
			r.With(app.requireAuthenticated).Put("/{id}", app.updateGenre)
			r.With(app.requireAuthenticated, app.requireAdmin).Delete("/{id}", app.deleteGenre)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", app.listCustomers)
			r.Get("/{id}", app.getCustomer)
			r.With(app.requireAuthenticated).Post("/", app.createCustomer)
			r.With(app.requireAuthenticated).Put("/{id}", app.updateCustomer)
			r.With(app.requireAuthenticated).Delete("/{id}", app.deleteCustomer)
		})
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Get("/{id}", app.getMovie)
			r.With(app.requireAuthenticated).Post("/", app.createMovie)
			r.With(app.requireAuthenticated).Put("/{id}", app.updateMovie)
			r.With(app.requireAuthenticated).Delete("/{id}", app.deleteMovie)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", app.registerUser)
			r.With(app.requireAuthenticated).Get("/me", app.getCurrentUser)
		})
		r.Post("/auth", app.login)
		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", app.listRentals)
			r.Post("/", app.checkoutRental)
		})
		r.With(app.requireAuthenticated).Post("/returns", app.returnRental)
	})
	return router
}
