// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode/utf8"

	"securepass/internal/models"
	"securepass/internal/store"
)

// ImportResult reports the outcome of an import. Errors is never nil.
type ImportResult struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`

	// WriteFailed is set when the document was valid but storing the
	// accepted batch failed.
	WriteFailed bool `json:"-"`
}

// errMissingFields marks an entry without a label or password.
var errMissingFields = errors.New("missing required fields")

// Importer merges JSON backups into a password store.
type Importer struct {
	passwords *store.PasswordStore
	now       func() time.Time
}

// NewImporter returns an Importer writing into passwords.
func NewImporter(passwords *store.PasswordStore) *Importer {
	return &Importer{passwords: passwords, now: time.Now}
}

// SetClock replaces the clock used for ids and missing timestamps.
func (im *Importer) SetClock(now func() time.Time) {
	im.now = now
}

// Import parses content as a JSON backup and stores every valid entry
// whose label is not already present, ignoring case. Accepted entries are
// prepended in input order with a single write. Storage is never touched
// when the document is malformed or nothing qualifies.
func (im *Importer) Import(ctx context.Context, content string) ImportResult {
	result := ImportResult{Errors: []string{}}

	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		result.Errors = append(result.Errors, "Parse error: "+err.Error())
		return result
	}

	entries, ok := passwordEntries(content)
	if !ok {
		result.Errors = append(result.Errors, "Invalid file format: passwords array not found")
		return result
	}

	existing := make(map[string]bool)
	for _, r := range im.passwords.List(ctx) {
		existing[store.FoldKey(r.Label)] = true
	}

	var batch []models.PasswordRecord
	for i, raw := range entries {
		rec, err := im.parseEntry(raw)
		if err != nil {
			msg := err.Error()
			if errors.Is(err, errMissingFields) {
				msg = "Missing required fields (label or password)"
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, msg))
			continue
		}
		if existing[store.FoldKey(rec.Label)] {
			result.Skipped++
			continue
		}
		batch = append(batch, rec)
		result.Imported++
	}

	if len(batch) == 0 {
		result.Success = true
		return result
	}

	if err := im.passwords.Prepend(ctx, batch); err != nil {
		slog.Error("import write failed", "count", len(batch), "error", err)
		result.Errors = append(result.Errors, "Failed to save imported passwords")
		result.WriteFailed = true
		return result
	}
	result.Success = true
	return result
}

// passwordEntries extracts the top-level passwords array.
func passwordEntries(content string) ([]json.RawMessage, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &top); err != nil {
		return nil, false
	}
	raw, ok := top["passwords"]
	if !ok {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, false
	}
	return entries, true
}

// parseEntry validates one untrusted backup entry and builds the record
// it describes. Absent optional fields take their defaults.
func (im *Importer) parseEntry(raw json.RawMessage) (models.PasswordRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.PasswordRecord{}, errors.New("entry is not an object")
	}

	label, err := stringField(fields, "label")
	if err != nil {
		return models.PasswordRecord{}, err
	}
	password, err := stringField(fields, "password")
	if err != nil {
		return models.PasswordRecord{}, err
	}
	if label == "" || password == "" {
		return models.PasswordRecord{}, errMissingFields
	}

	now := im.now()
	rec := models.PasswordRecord{
		ID:        store.NewID(now),
		Label:     label,
		Password:  password,
		Length:    utf8.RuneCountInString(password),
		CreatedAt: now.UTC(),
		Settings:  models.DefaultSettings(),
	}

	if v, ok := present(fields, "strength"); ok {
		n, err := intField(v, "strength")
		if err != nil {
			return models.PasswordRecord{}, err
		}
		if n < 0 || n > 100 {
			return models.PasswordRecord{}, fmt.Errorf("strength %d out of range 0-100", n)
		}
		rec.Strength = n
	}

	if v, ok := present(fields, "length"); ok {
		n, err := intField(v, "length")
		if err != nil {
			return models.PasswordRecord{}, err
		}
		if n < 0 {
			return models.PasswordRecord{}, fmt.Errorf("length %d is negative", n)
		}
		if n > 0 {
			rec.Length = n
		}
	}

	if v, ok := present(fields, "createdAt"); ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return models.PasswordRecord{}, errors.New("createdAt must be a string")
		}
		if s != "" {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return models.PasswordRecord{}, fmt.Errorf("invalid createdAt %q", s)
			}
			rec.CreatedAt = t
		}
	}

	if v, ok := present(fields, "settings"); ok {
		var s models.GenerationSettings
		if err := json.Unmarshal(v, &s); err != nil {
			return models.PasswordRecord{}, errors.New("settings must be an object of booleans")
		}
		rec.Settings = s
	}

	category, err := stringField(fields, "category")
	if err != nil {
		return models.PasswordRecord{}, err
	}
	rec.Category = category

	return rec, nil
}

// present returns the raw value of key unless it is absent or null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := fields[key]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// stringField decodes an optional string. Absent and null read as "".
func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	v, ok := present(fields, key)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

// intField decodes a JSON number that must hold a whole value.
func intField(v json.RawMessage, key string) (int, error) {
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
	return int(f), nil
}
