package services

import (
	"log/slog"

	"vidly/proj/internal/config"
	"vidly/proj/internal/services/auth"
	"vidly/proj/internal/services/customers"
	"vidly/proj/internal/services/genres"
	"vidly/proj/internal/services/movies"
	"vidly/proj/internal/services/rentals"
	storagemodels "vidly/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth      *auth.AuthService
	Genres    *genres.GenreService
	Customers *customers.CustomerService
	Movies    *movies.MovieService
	Rentals   *rentals.RentalService
}

func New(log *slog.Logger, cfg *config.Config, m *storagemodels.Models) *Services {
	return &Services{
		Auth:      auth.New(log, m.Users, cfg.JWTSecret),
		Genres:    genres.New(log, m.Genres),
		Customers: customers.New(log, m.Customers),
		Movies:    movies.New(log, m.Movies, m.Genres),
		Rentals:   rentals.New(log, m.Customers, m.Movies, m.Rentals),
	}
}
