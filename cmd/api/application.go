package main

import (
	"log/slog"

	"vidly/proj/internal/config"
	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services"
	"vidly/proj/internal/storage/postgres"
	storagemodels "vidly/proj/internal/storage/postgres/models"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("sortbymoviefield", validator.ValidateSortByMovieField); err != nil {
		panic(err)
	}
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		services:     services.New(log, cfg, storagemodels.New(storage)),
		validator:    v,
		queryDecoder: queryDecoder,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
