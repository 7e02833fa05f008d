package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidly/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	app := NewTestApplication(t)
	token, err := app.services.Auth.IssueToken(&models.User{ID: "user-1", IsAdmin: true})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("x-auth-token", token)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromRequest(r)
			assert.Equal(t, "user-1", identity.ID)
			assert.True(t, identity.IsAdmin)
			w.WriteHeader(http.StatusOK)
		})
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("no token is anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, identityFromRequest(r).IsAnonymous())
			w.WriteHeader(http.StatusOK)
		})
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("invalid token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("x-auth-token", "garbage")
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRequireAuthenticated(t *testing.T) {
	app := NewTestApplication(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyIdentity, &models.Identity{ID: "user-1"}))
		app.requireAuthenticated(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyIdentity, models.AnonymousIdentity))
		app.requireAuthenticated(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := NewTestApplication(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("admin", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyIdentity, &models.Identity{ID: "user-1", IsAdmin: true}))
		app.requireAdmin(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("not admin", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyIdentity, &models.Identity{ID: "user-1"}))
		app.requireAdmin(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestGuardedRoutes(t *testing.T) {
	app := NewTestApplication(t)
	router := app.routes()

	t.Run("returns require a token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"customerId":"a","movieId":"b"}`)
		request := httptest.NewRequest(http.MethodPost, "/api/returns", body)
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("genre delete requires admin", func(t *testing.T) {
		token, err := app.services.Auth.IssueToken(&models.User{ID: "user-1"})
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodDelete, "/api/genres/some-id", nil)
		request.Header.Set("x-auth-token", token)
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
	t.Run("healthcheck is open", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/healthcheck", nil)
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
