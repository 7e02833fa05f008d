package main

import (
	"errors"
	"net/http"

	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services/auth"
)

type registerUserInput struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

func (app *Application) registerUser(w http.ResponseWriter, r *http.Request) {
	var input registerUserInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	user, token, err := app.services.Auth.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			app.Http.BadRequest(w, r, "User already registered.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	w.Header().Set("x-auth-token", token)
	app.Http.Created(w, r, envelop{"user": envelop{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}}, "")
}

func (app *Application) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)
	user, err := app.services.Auth.GetUser(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return
	}
	token, err := app.services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.BadRequest(w, r, "Invalid email or password.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"token": token}, "")
}
