package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"securepass/internal/models"
)

// ListCategories returns the vault's categories, seeding the defaults on
// first use.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	v, ok := a.open(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v.categories.List(r.Context()))
}

// CreateCategory adds a category. Names are unique ignoring case.
func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var draft models.CategoryDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	draft.Name = strings.TrimSpace(draft.Name)
	if msg := validateCategoryDraft(draft); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	c, err := v.categories.Add(r.Context(), draft)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCategory merges a partial update. Renames carry over to the
// passwords filed under the old name.
func (a *API) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.CategoryPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if msg := validateCategoryPatch(patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	if err := v.categories.Update(r.Context(), id, patch); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory removes a category and uncategorizes its passwords.
func (a *API) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	if err := v.categories.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
