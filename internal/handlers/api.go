// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the SecurePass JSON API.
// Every request opens the caller's vault through a BackendFunc, builds
// short-lived stores over it and performs one read-modify-write cycle.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"securepass/internal/archive"
	"securepass/internal/middleware"
	"securepass/internal/persist"
	"securepass/internal/session"
	"securepass/internal/store"
	"securepass/internal/transfer"
)

// Request body limits.
const (
	maxJSONBody   = 1 << 20
	maxImportBody = 5 << 20
)

// errNoVault is returned by SharedBackend when LoadVault did not run.
var errNoVault = errors.New("request has no vault")

// BackendFunc opens the persistence backend for one request.
type BackendFunc func(w http.ResponseWriter, r *http.Request) (persist.Backend, error)

// CookieBackend stores each vault in the browser's own cookies.
func CookieBackend(secure bool) BackendFunc {
	return func(w http.ResponseWriter, r *http.Request) (persist.Backend, error) {
		return persist.NewCookieJar(w, r, secure), nil
	}
}

// SharedBackend scopes a server-side backend to the request's vault.
// middleware.LoadVault must run first.
func SharedBackend(b persist.Backend) BackendFunc {
	return func(w http.ResponseWriter, r *http.Request) (persist.Backend, error) {
		id, ok := middleware.VaultFromCtx(r.Context())
		if !ok {
			return nil, errNoVault
		}
		return persist.WithPrefix(b, session.Prefix(id)), nil
	}
}

// Archiver uploads an export and returns a download link.
type Archiver interface {
	Store(ctx context.Context, vault, filename, contentType string, data []byte) (archive.Receipt, error)
}

// API groups the JSON API handlers and their dependencies.
type API struct {
	backend  BackendFunc
	archiver Archiver
	now      func() time.Time
	location *time.Location
}

// NewAPI creates the API handlers. archiver may be nil when no object
// storage is configured; pass a nil interface, not a typed nil pointer.
func NewAPI(backend BackendFunc, archiver Archiver) *API {
	return &API{
		backend:  backend,
		archiver: archiver,
		now:      time.Now,
		location: time.Local,
	}
}

// SetClock replaces the clock and the zone used for export dates.
func (a *API) SetClock(now func() time.Time, loc *time.Location) {
	a.now = now
	a.location = loc
}

// vault bundles the stores opened for one request.
type vault struct {
	passwords  *store.PasswordStore
	categories *store.CategoryStore
}

// open builds the request's stores. On failure it has already written a
// 500 response.
func (a *API) open(w http.ResponseWriter, r *http.Request) (*vault, bool) {
	b, err := a.backend(w, r)
	if err != nil {
		slog.Error("open vault failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return nil, false
	}
	passwords := store.NewPasswordStore(b)
	passwords.SetClock(a.now)
	categories := store.NewCategoryStore(b, passwords)
	categories.SetClock(a.now)
	return &vault{passwords: passwords, categories: categories}, true
}

func (a *API) exporter() *transfer.Exporter {
	return &transfer.Exporter{Location: a.location, Now: a.now}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("json response encode failed", "error", err)
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps a store failure to a status code.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateCategory):
		writeError(w, http.StatusConflict, "A category with this name already exists.")
	case errors.Is(err, store.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "Category not found.")
	case errors.Is(err, persist.ErrValueTooLarge):
		slog.Warn("vault over size limit", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Vault is full; delete some passwords first.")
	default:
		slog.Error("storage write failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save changes.")
	}
}

// decodeJSON reads a size-limited JSON body into v, rejecting unknown
// fields and trailing data. On failure it has already written a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if _, err := dec.Token(); err != io.EOF {
		writeError(w, http.StatusBadRequest, "Invalid request body: trailing data")
		return false
	}
	return true
}
