package main

import (
	"errors"
	"net/http"

	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services/customers"
)

type customerInput struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	IsGold bool   `json:"isGold"`
	Phone  string `json:"phone" validate:"required,min=5,max=50"`
}

func (app *Application) listCustomers(w http.ResponseWriter, r *http.Request) {
	customersList, err := app.services.Customers.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"customers": customersList}, "")
}

func (app *Application) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	customer, err := app.services.Customers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customers.ErrCustomerNotFound) {
			app.Http.NotFound(w, r, "The customer with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"customer": customer}, "")
}

func (app *Application) createCustomer(w http.ResponseWriter, r *http.Request) {
	var input customerInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	customer, err := app.services.Customers.Create(r.Context(), input.Name, input.IsGold, input.Phone)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"customer": customer}, "")
}

func (app *Application) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input customerInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	customer, err := app.services.Customers.Update(r.Context(), id, input.Name, input.IsGold, input.Phone)
	if err != nil {
		if errors.Is(err, customers.ErrCustomerNotFound) {
			app.Http.NotFound(w, r, "The customer with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"customer": customer}, "")
}

func (app *Application) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Customers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, customers.ErrCustomerNotFound) {
			app.Http.NotFound(w, r, "The customer with id "+id+" was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Customer deleted.")
}
