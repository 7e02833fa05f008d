package main

import (
	"errors"
	"net/http"

	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services/rentals"
)

type rentalInput struct {
	CustomerID string `json:"customerId" validate:"required,uuid"`
	MovieID    string `json:"movieId" validate:"required,uuid"`
}

func (app *Application) listRentals(w http.ResponseWriter, r *http.Request) {
	rentalsList, err := app.services.Rentals.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"rentals": rentalsList}, "")
}

func (app *Application) checkoutRental(w http.ResponseWriter, r *http.Request) {
	var input rentalInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	rental, err := app.services.Rentals.Checkout(r.Context(), input.CustomerID, input.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrValidation):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, rentals.ErrInvalidCustomer):
			app.Http.BadRequest(w, r, "Invalid customer.")
		case errors.Is(err, rentals.ErrInvalidMovie):
			app.Http.BadRequest(w, r, "Invalid movie.")
		case errors.Is(err, rentals.ErrOutOfStock):
			app.Http.BadRequest(w, r, "Movie not in stock.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"rental": rental}, "")
}

func (app *Application) returnRental(w http.ResponseWriter, r *http.Request) {
	var input rentalInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	rental, err := app.services.Rentals.Return(r.Context(), input.CustomerID, input.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrValidation):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, rentals.ErrRentalNotFound):
			app.Http.NotFound(w, r, "Rental not found.")
		case errors.Is(err, rentals.ErrAlreadyReturned):
			app.Http.BadRequest(w, r, "Return already processed.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"rental": rental}, "")
}
