package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"securepass/internal/generator"
	"securepass/internal/models"
	"securepass/internal/stats"
)

// generateRequest is the body of POST /api/generate. Nil toggles default
// to true, except ExcludeSimilar which defaults to false.
type generateRequest struct {
	Length           int   `json:"length"`
	IncludeUppercase *bool `json:"includeUppercase"`
	IncludeLowercase *bool `json:"includeLowercase"`
	IncludeNumbers   *bool `json:"includeNumbers"`
	IncludeSymbols   *bool `json:"includeSymbols"`
	ExcludeSimilar   bool  `json:"excludeSimilar"`
}

type generateResponse struct {
	Password string                    `json:"password"`
	Length   int                       `json:"length"`
	Strength int                       `json:"strength"`
	Tier     string                    `json:"tier"`
	Settings models.GenerationSettings `json:"settings"`
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

// Generate returns a fresh random password. Nothing is stored.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}
	if req.Length == 0 {
		req.Length = generator.DefaultLength
	}

	settings := models.GenerationSettings{
		IncludeUppercase: orTrue(req.IncludeUppercase),
		IncludeLowercase: orTrue(req.IncludeLowercase),
		IncludeNumbers:   orTrue(req.IncludeNumbers),
		IncludeSymbols:   orTrue(req.IncludeSymbols),
		ExcludeSimilar:   req.ExcludeSimilar,
	}

	pwd, err := generator.Generate(req.Length, settings)
	switch {
	case errors.Is(err, generator.ErrLength):
		writeError(w, http.StatusBadRequest, "Length must be between 4 and 128.")
		return
	case errors.Is(err, generator.ErrEmptyCharset):
		writeError(w, http.StatusBadRequest, "Please select at least one character type.")
		return
	case err != nil:
		slog.Error("password generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate password.")
		return
	}

	strength := generator.Strength(pwd)
	writeJSON(w, http.StatusOK, generateResponse{
		Password: pwd,
		Length:   req.Length,
		Strength: strength,
		Tier:     stats.TierOf(strength).String(),
		Settings: settings,
	})
}
