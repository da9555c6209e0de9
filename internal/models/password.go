// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records persisted in a client vault. JSON
// names match the persisted blob and the backup file format, so they stay
// camelCase even though the rest of the API uses snake_case.
package models

import "time"

// MaxPasswords caps the stored password collection. Writes keep the first
// MaxPasswords records, which are the newest because new records are
// always prepended.
const MaxPasswords = 100

// GenerationSettings is a snapshot of the toggles active when a password
// was generated. Informational only; never re-validated.
type GenerationSettings struct {
	IncludeUppercase bool `json:"includeUppercase"`
	IncludeLowercase bool `json:"includeLowercase"`
	IncludeNumbers   bool `json:"includeNumbers"`
	IncludeSymbols   bool `json:"includeSymbols"`
	ExcludeSimilar   bool `json:"excludeSimilar"`
}

// DefaultSettings is used for imported records that carry no settings.
func DefaultSettings() GenerationSettings {
	return GenerationSettings{
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
		ExcludeSimilar:   false,
	}
}

// PasswordRecord is a single saved password.
type PasswordRecord struct {
	ID        string             `json:"id"`
	Password  string             `json:"password"`
	Label     string             `json:"label"`
	Strength  int                `json:"strength"`
	Length    int                `json:"length"`
	CreatedAt time.Time          `json:"createdAt"`
	Settings  GenerationSettings `json:"settings"`

	// Category holds a category name, not an id. Empty means uncategorized.
	Category string `json:"category,omitempty"`
}

// PasswordDraft is the caller-supplied part of a new record. The store
// assigns ID and CreatedAt.
type PasswordDraft struct {
	Password string             `json:"password"`
	Label    string             `json:"label"`
	Strength int                `json:"strength"`
	Length   int                `json:"length"`
	Settings GenerationSettings `json:"settings"`
	Category string             `json:"category,omitempty"`
}

// PasswordPatch is a partial update. Nil fields are left untouched; a
// non-nil empty Category clears the category.
type PasswordPatch struct {
	Password *string             `json:"password,omitempty"`
	Label    *string             `json:"label,omitempty"`
	Strength *int                `json:"strength,omitempty"`
	Length   *int                `json:"length,omitempty"`
	Settings *GenerationSettings `json:"settings,omitempty"`
	Category *string             `json:"category,omitempty"`
}

// Apply merges the patch into r and returns the result.
func (p PasswordPatch) Apply(r PasswordRecord) PasswordRecord {
	if p.Password != nil {
		r.Password = *p.Password
	}
	if p.Label != nil {
		r.Label = *p.Label
	}
	if p.Strength != nil {
		r.Strength = *p.Strength
	}
	if p.Length != nil {
		r.Length = *p.Length
	}
	if p.Settings != nil {
		r.Settings = *p.Settings
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	return r
}
