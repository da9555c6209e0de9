package handlers

import (
	"net/http"

	"securepass/internal/stats"
)

// Stats returns the strength breakdown over every stored password.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	v, ok := a.open(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(v.passwords.List(r.Context())))
}

// CategoryStats returns one strength breakdown per category name.
func (a *API) CategoryStats(w http.ResponseWriter, r *http.Request) {
	v, ok := a.open(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	writeJSON(w, http.StatusOK, stats.ByCategory(v.passwords.List(ctx), v.categories.List(ctx)))
}
