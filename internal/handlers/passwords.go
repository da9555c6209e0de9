// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"securepass/internal/generator"
	"securepass/internal/models"
	"securepass/internal/stats"
	"securepass/internal/store"
)

// createPasswordRequest is the body of POST /api/passwords. Strength,
// length and settings are derived from the password when omitted.
type createPasswordRequest struct {
	Password string                     `json:"password"`
	Label    string                     `json:"label"`
	Strength *int                       `json:"strength"`
	Length   *int                       `json:"length"`
	Settings *models.GenerationSettings `json:"settings"`
	Category string                     `json:"category"`
}

type bulkCategoryRequest struct {
	IDs      []string `json:"ids"`
	Category string   `json:"category"`
}

// ListPasswords returns the vault's passwords, optionally filtered and
// sorted by the q, strength, category, sort and order query parameters.
func (a *API) ListPasswords(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := store.Query{
		Search:   params.Get("q"),
		Strength: params.Get("strength"),
		Category: params.Get("category"),
		Sort:     store.SortField(params.Get("sort")),
	}
	switch q.Sort {
	case store.SortNone, store.SortDate, store.SortStrength, store.SortLabel:
	default:
		writeError(w, http.StatusBadRequest, "Sort must be one of date, strength, label.")
		return
	}
	if q.Strength != "" && q.Strength != "all" {
		if _, ok := stats.ParseTier(q.Strength); !ok {
			writeError(w, http.StatusBadRequest, "Strength must be one of all, weak, fair, good, strong.")
			return
		}
	}
	switch order := params.Get("order"); order {
	case "", "desc":
		q.Desc = true
	case "asc":
	default:
		writeError(w, http.StatusBadRequest, "Order must be asc or desc.")
		return
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v.passwords.Query(r.Context(), q))
}

// CreatePassword saves a new password at the front of the vault.
func (a *API) CreatePassword(w http.ResponseWriter, r *http.Request) {
	var req createPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Label = strings.TrimSpace(req.Label)
	for _, msg := range []string{
		validateLabel(req.Label),
		validateSecret(req.Password),
		validateScore(req.Strength, req.Length),
		validateCategoryRef(req.Category),
	} {
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	draft := models.PasswordDraft{
		Password: req.Password,
		Label:    req.Label,
		Strength: generator.Strength(req.Password),
		Length:   utf8.RuneCountInString(req.Password),
		Settings: models.DefaultSettings(),
		Category: req.Category,
	}
	if req.Strength != nil {
		draft.Strength = *req.Strength
	}
	if req.Length != nil {
		draft.Length = *req.Length
	}
	if req.Settings != nil {
		draft.Settings = *req.Settings
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	rec, err := v.passwords.Save(r.Context(), draft)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdatePassword merges a partial update into one password. Unknown ids
// succeed without changing anything.
func (a *API) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.PasswordPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.Label != nil {
		trimmed := strings.TrimSpace(*patch.Label)
		patch.Label = &trimmed
	}
	if msg := validatePasswordPatch(patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	if err := v.passwords.Update(r.Context(), id, patch); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePassword removes one password. Unknown ids succeed.
func (a *API) DeletePassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	if err := v.passwords.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearPasswords deletes the whole password collection.
func (a *API) ClearPasswords(w http.ResponseWriter, r *http.Request) {
	v, ok := a.open(w, r)
	if !ok {
		return
	}
	if err := v.passwords.ClearAll(r.Context()); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkCategory files the listed passwords under one category, or clears
// their category when it is empty.
func (a *API) BulkCategory(w http.ResponseWriter, r *http.Request) {
	var req bulkCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "At least one password id is required.")
		return
	}
	if len(req.IDs) > maxBulkIDs {
		writeError(w, http.StatusBadRequest, "Too many password ids.")
		return
	}
	if msg := validateCategoryRef(req.Category); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	if err := v.passwords.BulkUpdateCategory(r.Context(), req.IDs, req.Category); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
