package main

import (
	"errors"
	"net/http"

	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services/genres"
)

type genreInput struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func (app *Application) listGenres(w http.ResponseWriter, r *http.Request) {
	genresList, err := app.services.Genres.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genresList}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	genre, err := app.services.Genres.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, genres.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "The genre with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var input genreInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	genre, err := app.services.Genres.Create(r.Context(), input.Name)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "")
}

func (app *Application) updateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input genreInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	genre, err := app.services.Genres.Update(r.Context(), id, input.Name)
	if err != nil {
		if errors.Is(err, genres.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "The genre with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Genres.Delete(r.Context(), id); err != nil {
		if errors.Is(err, genres.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "The genre with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Genre deleted.")
}
