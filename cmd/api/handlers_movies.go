package main

import (
	"errors"
	"net/http"

	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services/movies"
)

type movieInput struct {
	Title           string  `json:"title" validate:"required,min=5,max=255"`
	GenreID         string  `json:"genreId" validate:"required,uuid"`
	NumberInStock   int32   `json:"numberInStock" validate:"gte=0,lte=255"`
	DailyRentalRate float64 `json:"dailyRentalRate" validate:"gte=0,lte=255"`
}

type listMoviesInput struct {
	Title    string `schema:"title" json:"title"`
	Sort     string `schema:"sort" json:"sort" validate:"omitempty,sortbymoviefield"`
	Page     int    `schema:"page" json:"page" validate:"omitempty,gte=1"`
	PageSize int    `schema:"page_size" json:"page_size" validate:"omitempty,gte=1,lte=100"`
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	input := listMoviesInput{Sort: "title", Page: 1, PageSize: 20}
	if err := app.queryDecoder.Decode(&input, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	flt := filters.Filters{
		Page:         input.Page,
		PageSize:     input.PageSize,
		Sort:         input.Sort,
		SortSafelist: filters.MovieSortSafelist,
	}
	moviesList, totalRecords, err := app.services.Movies.List(r.Context(), input.Title, flt)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"movies": moviesList,
		"metadata": envelop{
			"page":          input.Page,
			"page_size":     input.PageSize,
			"total_records": totalRecords,
		},
	}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input movieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	movie, err := app.services.Movies.Create(
		r.Context(),
		input.Title,
		input.GenreID,
		input.NumberInStock,
		input.DailyRentalRate,
	)
	if err != nil {
		if errors.Is(err, movies.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "Genre with id "+input.GenreID+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "")
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input movieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	movie, err := app.services.Movies.Update(
		r.Context(),
		id,
		input.Title,
		input.GenreID,
		input.NumberInStock,
		input.DailyRentalRate,
	)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrGenreNotFound):
			app.Http.NotFound(w, r, "Genre with id "+input.GenreID+" was not found.")
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie with id "+id+" was not found.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Movie deleted.")
}
