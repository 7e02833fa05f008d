package main

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"vidly/proj/internal/domain/models"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil && err != http.ErrAbortHandler {
				app.Http.ServerError(w, r, err.(error), "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
			time.Sleep(5 * time.Minute)
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			mu.Lock()
			if _, ok := clients[ip]; !ok {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst),
				}
			}
			clients[ip].lastSeen = time.Now()
			limiter := clients[ip].limiter
			mu.Unlock()
			if !limiter.Allow() {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Response(
					w, r,
					envelop{"error": "rate limit exceeded"},
					"Can't process request see an error below.",
					http.StatusTooManyRequests,
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyIdentity CtxKey = "identity"

// identityFromRequest never returns nil: Authenticate always stores either a
// verified identity or AnonymousIdentity.
func identityFromRequest(r *http.Request) *models.Identity {
	identity, ok := r.Context().Value(CtxKeyIdentity).(*models.Identity)
	if !ok {
		return models.AnonymousIdentity
	}
	return identity
}

// Authenticate resolves the x-auth-token header into an identity on the
// request context. Requests without a token proceed as anonymous; the
// per-route guards decide whether that is acceptable.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := models.AnonymousIdentity

		token := r.Header.Get("x-auth-token")
		if token != "" {
			var err error
			identity, err = app.services.Auth.Authenticate(token)
			if err != nil {
				app.log.Warn("invalid token", "path", r.URL.Path)
				app.Http.BadRequest(w, r, "Invalid token.")
				return
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyIdentity, identity))
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFromRequest(r).IsAnonymous() {
			app.Http.Unauthorized(w, r, "Access denied. No token provided.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identityFromRequest(r).IsAdmin {
			app.Http.Forbidden(w, r, "Access denied.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
