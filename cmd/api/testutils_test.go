package main

import (
	"io"
	"log/slog"
	"testing"

	"vidly/proj/internal/config"
	"vidly/proj/internal/storage/postgres"
)

// NewTestApplication wires an Application against an empty storage handle.
// Suitable for middleware and routing tests that never reach the database.
func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		JWTSecret: "test-secret",
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApplication(cfg, log, &postgres.Storage{})
}
